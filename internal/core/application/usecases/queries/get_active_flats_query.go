package queries

import (
	"errors"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrGetActiveFlatsQueryIsNotConstructed = errors.New(
	"GetActiveFlatsQuery must be created via NewGetActiveFlatsQuery constructor",
)

// GetActiveFlatsQuery lists the flats of a location that have packages
// waiting. It feeds the flat picker on the collect screen.
type GetActiveFlatsQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActiveFlatsQuery(locationID kernel.UUID) (GetActiveFlatsQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetActiveFlatsQuery{}, errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	return GetActiveFlatsQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActiveFlatsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveFlatsQueryIsNotConstructed)
}

func (q GetActiveFlatsQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetActiveFlatsQueryResponse never carries the full mobile number.
type GetActiveFlatsQueryResponse struct {
	FlatNumber    string `json:"flat_number"`
	ResidentName  string `json:"resident_name"`
	MaskedMobile  string `json:"mobile"`
	DeliveryCount int    `json:"delivery_count"`
}
