package queries

import (
	"errors"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/guard"
)

var ErrGetTowersQueryIsNotConstructed = errors.New(
	"GetTowersQuery must be created via NewGetTowersQuery constructor",
)

// GetTowersQuery lists the active locations a guard can pick on login.
type GetTowersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTowersQuery() GetTowersQuery {
	return GetTowersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTowersQuery) Validate() error {
	return q.guard.Validate(ErrGetTowersQueryIsNotConstructed)
}

type GetTowersQueryResponse struct {
	ID          kernel.UUID `json:"id"`
	SocietyName string      `json:"society_name"`
	TowerName   string      `json:"tower_name"`
}
