package queries

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

const (
	DefaultResidentsPerPage = 50
	MaxResidentsPerPage     = 100
)

var ErrGetResidentsQueryIsNotConstructed = errors.New(
	"GetResidentsQuery must be created via NewGetResidentsQuery constructor",
)

// ResidentFilter narrows the resident listing. Zero fields match everything.
type ResidentFilter struct {
	LocationID kernel.UUID
	FlatNumber string
	// Search matches flat number, name, mobile or email, case-insensitively.
	Search string
	Status resident.Status
}

// GetResidentsQuery pages through residents for the management screen.
type GetResidentsQuery struct {
	filter  ResidentFilter
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// NewGetResidentsQuery defaults page to 1 and perPage to
// DefaultResidentsPerPage, and caps perPage at MaxResidentsPerPage.
func NewGetResidentsQuery(filter ResidentFilter, page, perPage int) (GetResidentsQuery, error) {
	filter.FlatNumber = strings.TrimSpace(filter.FlatNumber)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Status = resident.Status(strings.ToLower(strings.TrimSpace(string(filter.Status))))

	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			return GetResidentsQuery{}, err
		}
	}
	if page < 0 {
		return GetResidentsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}

	if page == 0 {
		page = 1
	}
	switch {
	case perPage <= 0:
		perPage = DefaultResidentsPerPage
	case perPage > MaxResidentsPerPage:
		perPage = MaxResidentsPerPage
	}

	return GetResidentsQuery{filter: filter, page: page, perPage: perPage, guard: guard.NewConstructorGuard()}, nil
}

func (q GetResidentsQuery) Validate() error {
	return q.guard.Validate(ErrGetResidentsQueryIsNotConstructed)
}

func (q GetResidentsQuery) Filter() ResidentFilter { return q.filter }
func (q GetResidentsQuery) Page() int              { return q.page }
func (q GetResidentsQuery) PerPage() int           { return q.perPage }

// ResidentView is one row of the resident listing.
type ResidentView struct {
	ID          kernel.UUID     `json:"id"`
	LocationID  kernel.UUID     `json:"location_id"`
	SocietyName string          `json:"society_name"`
	TowerName   string          `json:"tower_name"`
	FlatNumber  string          `json:"flat_number"`
	FullName    string          `json:"full_name"`
	Mobile      string          `json:"mobile"`
	Email       string          `json:"email"`
	Status      resident.Status `json:"status"`
}

type GetResidentsQueryResponse struct {
	Residents  []ResidentView `json:"residents"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}
