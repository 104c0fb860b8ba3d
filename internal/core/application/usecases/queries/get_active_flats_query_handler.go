package queries

import (
	"context"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"

	"gorm.io/gorm"
)

type GetActiveFlatsQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveFlatsQueryHandler(db *gorm.DB) GetActiveFlatsQueryHandler {
	return GetActiveFlatsQueryHandler{db: db}
}

// Handle returns flats ordered by flat number.
func (h GetActiveFlatsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveFlatsQuery,
) ([]GetActiveFlatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	flats := make([]GetActiveFlatsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.flat_number,
			r.full_name,
			r.mobile,
			COUNT(d.id)
		FROM deliveries d
		JOIN residents r ON r.id = d.resident_id
		WHERE d.location_id = ? AND d.status = ? AND r.status = ?
		GROUP BY r.flat_number, r.full_name, r.mobile
		ORDER BY r.flat_number
	`, query.LocationID().Bytes(), string(delivery.Deposited), string(resident.Active)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flat   GetActiveFlatsQueryResponse
			mobile string
		)
		if err = rows.Scan(&flat.FlatNumber, &flat.ResidentName, &mobile, &flat.DeliveryCount); err != nil {
			return nil, err
		}

		m, mobileErr := kernel.NewMobile(mobile)
		if mobileErr != nil {
			return nil, mobileErr
		}
		flat.MaskedMobile = m.Masked()
		flats = append(flats, flat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return flats, nil
}
