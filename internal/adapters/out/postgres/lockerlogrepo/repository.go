package lockerlogrepo

import (
	"context"
	"errors"

	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/lockerlog"
	"parcellocker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHardwareSyncRepository implements ports.HardwareSyncRepository using GORM.
type GormHardwareSyncRepository struct {
	db *gorm.DB
}

func NewGormHardwareSyncRepository(db *gorm.DB) *GormHardwareSyncRepository {
	return &GormHardwareSyncRepository{db: db}
}

func (r *GormHardwareSyncRepository) Add(ctx context.Context, record *lockerlog.HardwareSyncRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := syncFromDomain(record)
	return dialect.Classify("insert hardware sync", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormHardwareSyncRepository) Update(ctx context.Context, record *lockerlog.HardwareSyncRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := syncFromDomain(record)
	result := r.db.WithContext(ctx).Model(&HardwareSyncDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"action":               dto.Action,
			"otp_entered":          dto.OTPEntered,
			"deposit_requested_at": dto.DepositRequestedAt,
			"collect_requested_at": dto.CollectRequestedAt,
			"is_active":            dto.IsActive,
		})
	return dialect.ExpectOneRow("update hardware sync", result)
}

func (r *GormHardwareSyncRepository) FindActiveByDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*lockerlog.HardwareSyncRecord, error) {
	var dto HardwareSyncDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ? AND is_active = ?", deliveryID.Bytes(), true).
		Order("deposit_requested_at DESC").
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("hardware sync", deliveryID.String())
	}
	if err != nil {
		return nil, dialect.Classify("find hardware sync", err)
	}
	return syncToDomain(dto)
}

func (r *GormHardwareSyncRepository) PurgeCollected(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("action = ?", string(lockerlog.ActionCollected)).
		Delete(&HardwareSyncDTO{})
	if result.Error != nil {
		return 0, dialect.Classify("purge hardware sync", result.Error)
	}
	return result.RowsAffected, nil
}

// GormAccessAuditRepository appends to the access audit log. Rows are never
// updated.
type GormAccessAuditRepository struct {
	db *gorm.DB
}

func NewGormAccessAuditRepository(db *gorm.DB) *GormAccessAuditRepository {
	return &GormAccessAuditRepository{db: db}
}

func (r *GormAccessAuditRepository) Append(ctx context.Context, record lockerlog.AccessAuditRecord) error {
	if err := errors.Join(record.ID.Validate(), record.DeliveryID.Validate(), record.LockerID.Validate()); err != nil {
		return err
	}

	dto := auditFromDomain(record)
	return dialect.Classify("append access audit", r.db.WithContext(ctx).Create(&dto).Error)
}
