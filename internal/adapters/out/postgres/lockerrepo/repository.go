package lockerrepo

import (
	"context"
	"errors"

	"parcellocker/internal/adapters/out/postgres/deliveryrepo"
	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLockerRepository implements ports.LockerRepository using GORM.
type GormLockerRepository struct {
	db *gorm.DB
}

func NewGormLockerRepository(db *gorm.DB) *GormLockerRepository {
	return &GormLockerRepository{db: db}
}

func (r *GormLockerRepository) Add(ctx context.Context, aggregate *locker.Locker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dialect.Classify("insert locker", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormLockerRepository) Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LockerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("locker", id.String())
		}
		return nil, dialect.Classify("get locker", err)
	}

	return toDomain(dto)
}

// Update is a compare-and-set on status. Zero matched rows is a conflict.
func (r *GormLockerRepository) Update(ctx context.Context, aggregate *locker.Locker, expected locker.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&LockerDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(expected)).
		Updates(map[string]any{
			"status":         dto.Status,
			"last_opened_at": dto.LastOpenedAt,
			"last_closed_at": dto.LastClosedAt,
		})
	return dialect.ExpectOneRow("update locker", result)
}

func (r *GormLockerRepository) FindAllocationCandidates(
	ctx context.Context,
	locationID kernel.UUID,
	size kernel.PackageSize,
) ([]*locker.Locker, error) {
	db := r.db.WithContext(ctx)

	held := db.Model(&deliveryrepo.DeliveryDTO{}).
		Select("locker_id").
		Where("status IN ?", activeDeliveryStatuses())

	var dtos []LockerDTO
	err := dialect.ForUpdateSkipLocked(db).
		Where("location_id = ? AND size = ? AND status = ?", locationID.Bytes(), size.String(), string(locker.Available)).
		Where("id NOT IN (?)", held).
		Order("locker_number ASC").
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, dialect.Classify("find free locker", err)
	}

	lockers := make([]*locker.Locker, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lockers = append(lockers, l)
	}
	return lockers, nil
}

func activeDeliveryStatuses() []string {
	statuses := delivery.ActiveStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
