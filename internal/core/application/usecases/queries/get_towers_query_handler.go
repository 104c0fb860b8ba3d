package queries

import (
	"context"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTowersQueryHandler struct {
	db *gorm.DB
}

func NewGetTowersQueryHandler(db *gorm.DB) GetTowersQueryHandler {
	return GetTowersQueryHandler{db: db}
}

func (h GetTowersQueryHandler) Handle(ctx context.Context, query GetTowersQuery) ([]GetTowersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	towers := make([]GetTowersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, society_name, tower_name
		FROM locations
		WHERE status = ?
		ORDER BY tower_name
	`, string(location.Active)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tower GetTowersQueryResponse
			id    uuid.UUID
		)
		if err = rows.Scan(&id, &tower.SocietyName, &tower.TowerName); err != nil {
			return nil, err
		}
		if tower.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		towers = append(towers, tower)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return towers, nil
}
