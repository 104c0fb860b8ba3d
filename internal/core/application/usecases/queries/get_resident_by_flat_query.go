package queries

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrGetResidentByFlatQueryIsNotConstructed = errors.New(
	"GetResidentByFlatQuery must be created via NewGetResidentByFlatQuery constructor",
)

// GetResidentByFlatQuery looks up the active resident of one flat. The
// deposit screen uses it to confirm the recipient before a locker opens.
type GetResidentByFlatQuery struct {
	locationID kernel.UUID
	flatNumber string

	guard guard.ConstructorGuard
}

func NewGetResidentByFlatQuery(locationID kernel.UUID, flatNumber string) (GetResidentByFlatQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetResidentByFlatQuery{}, errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	flatNumber = strings.TrimSpace(flatNumber)
	if flatNumber == "" {
		return GetResidentByFlatQuery{}, errs.NewValueIsRequiredError("flat number")
	}
	return GetResidentByFlatQuery{
		locationID: locationID,
		flatNumber: flatNumber,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetResidentByFlatQuery) Validate() error {
	return q.guard.Validate(ErrGetResidentByFlatQueryIsNotConstructed)
}

func (q GetResidentByFlatQuery) LocationID() kernel.UUID { return q.locationID }
func (q GetResidentByFlatQuery) FlatNumber() string      { return q.flatNumber }

// GetResidentByFlatQueryResponse never carries the full mobile number.
type GetResidentByFlatQueryResponse struct {
	ID           kernel.UUID `json:"id"`
	FlatNumber   string      `json:"flat_number"`
	FullName     string      `json:"full_name"`
	MaskedMobile string      `json:"mobile"`
	TowerName    string      `json:"tower_name"`
}
