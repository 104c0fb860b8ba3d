package queries

import (
	"context"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"

	"gorm.io/gorm"
)

type GetLockerAvailabilityQueryHandler struct {
	db *gorm.DB
}

func NewGetLockerAvailabilityQueryHandler(db *gorm.DB) GetLockerAvailabilityQueryHandler {
	return GetLockerAvailabilityQueryHandler{db: db}
}

func (h GetLockerAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetLockerAvailabilityQuery,
) (GetLockerAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	response := make(GetLockerAvailabilityQueryResponse, len(kernel.AllPackageSizes()))
	for _, size := range kernel.AllPackageSizes() {
		response[size] = LockerAvailability{}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			size,
			status,
			COUNT(*)
		FROM lockers
		WHERE location_id = ? AND status <> ?
		GROUP BY size, status
	`, query.LocationID().Bytes(), string(locker.Maintenance)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			size, status string
			count        int
		)
		if err = rows.Scan(&size, &status, &count); err != nil {
			return nil, err
		}

		entry, known := response[kernel.PackageSize(size)]
		if !known {
			continue
		}
		entry.Total += count
		switch locker.Status(status) {
		case locker.Available:
			entry.Available += count
		case locker.Occupied:
			entry.Occupied += count
		}
		response[kernel.PackageSize(size)] = entry
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return response, nil
}
