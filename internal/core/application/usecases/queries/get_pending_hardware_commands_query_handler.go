package queries

import (
	"context"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/lockerlog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPendingHardwareCommandsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingHardwareCommandsQueryHandler(db *gorm.DB) GetPendingHardwareCommandsQueryHandler {
	return GetPendingHardwareCommandsQueryHandler{db: db}
}

func (h GetPendingHardwareCommandsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingHardwareCommandsQuery,
) ([]GetPendingHardwareCommandsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	commands := make([]GetPendingHardwareCommandsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			locker_number,
			tower_name,
			action,
			otp_entered,
			deposit_requested_at,
			collect_requested_at,
			is_active
		FROM hardware_sync
		WHERE location_id = ? AND action <> ?
		ORDER BY COALESCE(collect_requested_at, deposit_requested_at), locker_number
	`, query.LocationID().Bytes(), string(lockerlog.ActionCollected)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cmd                  GetPendingHardwareCommandsQueryResponse
			id, deliveryID       uuid.UUID
			action, otp          string
			depositAt, collectAt *time.Time
		)
		err = rows.Scan(
			&id,
			&deliveryID,
			&cmd.LockerNumber,
			&cmd.TowerName,
			&action,
			&otp,
			&depositAt,
			&collectAt,
			&cmd.IsActive,
		)
		if err != nil {
			return nil, err
		}

		if cmd.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if cmd.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, err
		}
		cmd.Action = lockerlog.SyncAction(action)
		cmd.OTP = otp
		cmd.DepositRequestedAt = depositAt
		cmd.CollectRequestedAt = collectAt
		commands = append(commands, cmd)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return commands, nil
}
