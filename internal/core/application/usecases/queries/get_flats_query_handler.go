package queries

import (
	"context"

	"parcellocker/internal/core/domain/model/resident"

	"gorm.io/gorm"
)

type GetFlatsQueryHandler struct {
	db *gorm.DB
}

func NewGetFlatsQueryHandler(db *gorm.DB) GetFlatsQueryHandler {
	return GetFlatsQueryHandler{db: db}
}

// Handle returns distinct flat numbers of active residents, sorted.
func (h GetFlatsQueryHandler) Handle(ctx context.Context, query GetFlatsQuery) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	flats := make([]string, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT flat_number
		FROM residents
		WHERE location_id = ? AND status = ?
		ORDER BY flat_number
	`, query.LocationID().Bytes(), string(resident.Active)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var flat string
		if err = rows.Scan(&flat); err != nil {
			return nil, err
		}
		flats = append(flats, flat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return flats, nil
}
