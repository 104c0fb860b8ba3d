package queries

import (
	"context"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetResidentsQueryHandler struct {
	db *gorm.DB
}

func NewGetResidentsQueryHandler(db *gorm.DB) GetResidentsQueryHandler {
	return GetResidentsQueryHandler{db: db}
}

// Handle returns one page of residents ordered by tower, flat and name.
// A page past the end yields an empty list with the real total.
func (h GetResidentsQueryHandler) Handle(
	ctx context.Context,
	query GetResidentsQuery,
) (GetResidentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetResidentsQueryResponse{}, err
	}

	where, args := residentConditions(query.Filter())

	response := GetResidentsQueryResponse{
		Residents: make([]ResidentView, 0),
		Page:      query.Page(),
		PerPage:   query.PerPage(),
	}

	db := h.db.WithContext(ctx)
	err := db.Raw(`
		SELECT COUNT(*)
		FROM residents r
		JOIN locations l ON l.id = r.location_id
		WHERE `+where, args...).Scan(&response.Total).Error
	if err != nil {
		return GetResidentsQueryResponse{}, err
	}
	response.TotalPages = int((response.Total + int64(query.PerPage()) - 1) / int64(query.PerPage()))

	pageArgs := append(args, query.PerPage(), (query.Page()-1)*query.PerPage())
	rows, err := db.Raw(`
		SELECT
			r.id,
			r.location_id,
			l.society_name,
			l.tower_name,
			r.flat_number,
			r.full_name,
			r.mobile,
			r.email,
			r.status
		FROM residents r
		JOIN locations l ON l.id = r.location_id
		WHERE `+where+`
		ORDER BY l.tower_name, r.flat_number, r.full_name
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return GetResidentsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view           ResidentView
			id, locationID uuid.UUID
			status         string
		)
		err = rows.Scan(
			&id,
			&locationID,
			&view.SocietyName,
			&view.TowerName,
			&view.FlatNumber,
			&view.FullName,
			&view.Mobile,
			&view.Email,
			&status,
		)
		if err != nil {
			return GetResidentsQueryResponse{}, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetResidentsQueryResponse{}, err
		}
		if view.LocationID, err = kernel.UUIDFromBytes(locationID[:]); err != nil {
			return GetResidentsQueryResponse{}, err
		}
		view.Status = resident.Status(status)
		response.Residents = append(response.Residents, view)
	}

	if err = rows.Err(); err != nil {
		return GetResidentsQueryResponse{}, err
	}

	return response, nil
}

func residentConditions(filter ResidentFilter) (string, []any) {
	conditions := []string{"1 = 1"}
	args := make([]any, 0, 8)

	if filter.LocationID.Validate() == nil {
		conditions = append(conditions, "r.location_id = ?")
		args = append(args, filter.LocationID.Bytes())
	}
	if filter.FlatNumber != "" {
		conditions = append(conditions, "r.flat_number = ?")
		args = append(args, filter.FlatNumber)
	}
	if filter.Status != "" {
		conditions = append(conditions, "r.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, `(
			LOWER(r.flat_number) LIKE ? OR
			LOWER(r.full_name) LIKE ? OR
			r.mobile LIKE ? OR
			LOWER(r.email) LIKE ?
		)`)
		args = append(args, like, like, like, like)
	}

	return strings.Join(conditions, " AND "), args
}
