package deliveryrepo

import (
	"context"
	"errors"

	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dialect.Classify("insert delivery", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, dialect.Classify("get delivery", err)
	}

	return toDomain(dto)
}

// Update is a compare-and-set on status. Zero matched rows is a conflict.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(expected)).
		Updates(map[string]any{
			"status":            dto.Status,
			"otp_attempts":      dto.OTPAttempts,
			"notification_sent": dto.NotificationSent,
			"collected_at":      dto.CollectedAt,
		})
	return dialect.ExpectOneRow("update delivery", result)
}

func (r *GormDeliveryRepository) FindDepositedForUpdate(
	ctx context.Context,
	residentID, locationID kernel.UUID,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := dialect.ForUpdate(r.db.WithContext(ctx)).
		Where("resident_id = ? AND location_id = ? AND status = ?",
			residentID.Bytes(), locationID.Bytes(), string(delivery.Deposited)).
		Order("deposited_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, dialect.Classify("lock deposited deliveries", err)
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

func (r *GormDeliveryRepository) CountDeposited(ctx context.Context, residentID, locationID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("resident_id = ? AND location_id = ? AND status = ?",
			residentID.Bytes(), locationID.Bytes(), string(delivery.Deposited)).
		Count(&count).Error
	if err != nil {
		return 0, dialect.Classify("count deposited deliveries", err)
	}
	return count, nil
}
