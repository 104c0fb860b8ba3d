package queries

import (
	"errors"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrGetLockerAvailabilityQueryIsNotConstructed = errors.New(
	"GetLockerAvailabilityQuery must be created via NewGetLockerAvailabilityQuery constructor",
)

// GetLockerAvailabilityQuery counts the lockers of one location by size.
//
// Example:
//
//	query, err := NewGetLockerAvailabilityQuery(locationID)
//	if err != nil {
//	    return err
//	}
//	sizes, err := handler.Handle(ctx, query)
//	fmt.Println(sizes[kernel.SizeMedium].Available)
type GetLockerAvailabilityQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLockerAvailabilityQuery(locationID kernel.UUID) (GetLockerAvailabilityQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetLockerAvailabilityQuery{}, errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	return GetLockerAvailabilityQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLockerAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetLockerAvailabilityQueryIsNotConstructed)
}

func (q GetLockerAvailabilityQuery) LocationID() kernel.UUID {
	return q.locationID
}

// LockerAvailability is the count for one size. Lockers under maintenance
// are in none of the three numbers.
type LockerAvailability struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// GetLockerAvailabilityQueryResponse always has an entry for every size.
type GetLockerAvailabilityQueryResponse map[kernel.PackageSize]LockerAvailability
