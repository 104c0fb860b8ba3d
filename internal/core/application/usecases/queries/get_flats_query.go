package queries

import (
	"errors"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrGetFlatsQueryIsNotConstructed = errors.New(
	"GetFlatsQuery must be created via NewGetFlatsQuery constructor",
)

// GetFlatsQuery lists every occupied flat of a location, with or without
// waiting packages. Compare GetActiveFlatsQuery.
type GetFlatsQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetFlatsQuery(locationID kernel.UUID) (GetFlatsQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetFlatsQuery{}, errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	return GetFlatsQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetFlatsQuery) Validate() error {
	return q.guard.Validate(ErrGetFlatsQueryIsNotConstructed)
}

func (q GetFlatsQuery) LocationID() kernel.UUID {
	return q.locationID
}
