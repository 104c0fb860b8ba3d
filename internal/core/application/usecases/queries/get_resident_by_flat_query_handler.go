package queries

import (
	"context"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetResidentByFlatQueryHandler struct {
	db *gorm.DB
}

func NewGetResidentByFlatQueryHandler(db *gorm.DB) GetResidentByFlatQueryHandler {
	return GetResidentByFlatQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the flat has no active
// resident or the location is closed.
func (h GetResidentByFlatQueryHandler) Handle(
	ctx context.Context,
	query GetResidentByFlatQuery,
) (GetResidentByFlatQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetResidentByFlatQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.flat_number,
			r.full_name,
			r.mobile,
			l.tower_name
		FROM residents r
		JOIN locations l ON l.id = r.location_id
		WHERE r.location_id = ? AND r.flat_number = ? AND r.status = ? AND l.status = ?
		LIMIT 1
	`,
		query.LocationID().Bytes(),
		query.FlatNumber(),
		string(resident.Active),
		string(location.Active),
	).Rows()
	if err != nil {
		return GetResidentByFlatQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetResidentByFlatQueryResponse{}, err
		}
		return GetResidentByFlatQueryResponse{}, errs.NewObjectNotFoundError("flat", query.FlatNumber())
	}

	var (
		response GetResidentByFlatQueryResponse
		id       uuid.UUID
		mobile   string
	)
	if err = rows.Scan(&id, &response.FlatNumber, &response.FullName, &mobile, &response.TowerName); err != nil {
		return GetResidentByFlatQueryResponse{}, err
	}
	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetResidentByFlatQueryResponse{}, err
	}

	m, err := kernel.NewMobile(mobile)
	if err != nil {
		return GetResidentByFlatQueryResponse{}, err
	}
	response.MaskedMobile = m.Masked()

	return response, nil
}
