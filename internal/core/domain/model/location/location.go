package location

import (
	"errors"
	"fmt"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var (
	ErrSocietyNameIsRequired = errs.NewValueIsRequiredError("society name")
	ErrTowerNameIsRequired   = errs.NewValueIsRequiredError("tower name")

	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation or RestoreLocation")
)

// Status is the lifecycle flag of a location. Inactive locations accept no
// deposits.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

func (s Status) Validate() error {
	if s != Active && s != Inactive {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid location status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Location is a tower within a society. The engine never changes a
// location; its status is maintained outside this service.
type Location struct {
	id          kernel.UUID
	societyName string
	towerName   string
	status      Status
	guard       guard.ConstructorGuard
}

// NewLocation creates an active location.
func NewLocation(id kernel.UUID, societyName, towerName string) (*Location, error) {
	return RestoreLocation(id, societyName, towerName, Active)
}

// RestoreLocation rebuilds a location read back from the store.
func RestoreLocation(id kernel.UUID, societyName, towerName string, status Status) (*Location, error) {
	l := &Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		l.setID(id),
		l.setNames(societyName, towerName),
		l.setStatus(status),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) ID() kernel.UUID {
	return l.id
}

func (l *Location) SocietyName() string {
	return l.societyName
}

func (l *Location) TowerName() string {
	return l.towerName
}

func (l *Location) Status() Status {
	return l.status
}

func (l *Location) IsActive() bool {
	return l.status == Active
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setNames(society, tower string) error {
	society = strings.TrimSpace(society)
	tower = strings.TrimSpace(tower)

	var err error
	if society == "" {
		err = errors.Join(err, ErrSocietyNameIsRequired)
	}
	if tower == "" {
		err = errors.Join(err, ErrTowerNameIsRequired)
	}
	if err != nil {
		return err
	}

	l.societyName = society
	l.towerName = tower
	return nil
}

func (l *Location) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}
