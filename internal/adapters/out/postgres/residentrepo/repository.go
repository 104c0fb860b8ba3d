package residentrepo

import (
	"context"
	"errors"

	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/adapters/out/postgres/locationrepo"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormResidentRepository implements ports.ResidentRepository using GORM.
type GormResidentRepository struct {
	db *gorm.DB
}

func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{db: db}
}

func (r *GormResidentRepository) Add(ctx context.Context, aggregate *resident.Resident) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dialect.Classify("insert resident", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormResidentRepository) Update(ctx context.Context, aggregate *resident.Resident) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ResidentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"flat_number": dto.FlatNumber,
		"full_name":   dto.FullName,
		"mobile":      dto.Mobile,
		"email":       dto.Email,
		"status":      dto.Status,
	})
	if result.Error != nil {
		return dialect.Classify("update resident", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("resident", aggregate.ID().String())
	}
	return nil
}

func (r *GormResidentRepository) Get(ctx context.Context, id kernel.UUID) (*resident.Resident, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ResidentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("resident", id.String())
		}
		return nil, dialect.Classify("get resident", err)
	}

	return toDomain(dto)
}

func (r *GormResidentRepository) FindActiveByFlat(
	ctx context.Context,
	locationID kernel.UUID,
	flatNumber string,
) (*resident.Resident, error) {
	return r.findActive(ctx, "find resident by flat", flatNumber,
		"location_id = ? AND flat_number = ? AND status = ?",
		locationID.Bytes(), flatNumber, string(resident.Active),
	)
}

func (r *GormResidentRepository) FindActiveByContact(
	ctx context.Context,
	locationID kernel.UUID,
	mobile kernel.Mobile,
	flatNumber string,
) (*resident.Resident, error) {
	return r.findActive(ctx, "find resident by contact", flatNumber,
		"location_id = ? AND mobile = ? AND flat_number = ? AND status = ?",
		locationID.Bytes(), mobile.String(), flatNumber, string(resident.Active),
	)
}

func (r *GormResidentRepository) findActive(
	ctx context.Context,
	op, flatNumber string,
	query string,
	args ...any,
) (*resident.Resident, error) {
	var dto ResidentDTO
	err := r.db.WithContext(ctx).Where(query, args...).Order("id").Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("resident", flatNumber)
	}
	if err != nil {
		return nil, dialect.Classify(op, err)
	}
	return toDomain(dto)
}

// LockFlat takes a transaction scoped advisory lock on Postgres. MySQL has no
// transaction scoped advisory lock, so the location row is locked instead,
// which serializes registrations per location. SQLite needs nothing.
func (r *GormResidentRepository) LockFlat(ctx context.Context, locationID kernel.UUID, flatNumber string) error {
	db := r.db.WithContext(ctx)

	var err error
	switch dialect.Name(db) {
	case dialect.Postgres:
		err = db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", locationID.String()+":"+flatNumber).Error
	case dialect.MySQL:
		var ids []string
		err = dialect.ForUpdate(db.Model(&locationrepo.LocationDTO{})).
			Where("id = ?", locationID.Bytes()).
			Pluck("id", &ids).Error
	}
	return dialect.Classify("lock flat", err)
}
