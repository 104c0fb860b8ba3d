package locker

import (
	"errors"
	"fmt"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

// ErrLockerIsNotConstructed is returned when a Locker was built as a struct
// literal instead of through NewLocker or RestoreLocker.
var ErrLockerIsNotConstructed = errors.New("Locker must be created via NewLocker or RestoreLocker")

// Locker is one physical compartment, identified within its location by a
// positive number. Allocation always prefers the lowest free number.
//
// Locker follows these invariants:
//   - number is positive and unique within the location
//   - size never changes after installation
//   - only an available locker can be occupied, and only an occupied one
//     released
//   - a locker in maintenance is never allocated
type Locker struct {
	id           kernel.UUID
	locationID   kernel.UUID
	number       int
	size         kernel.PackageSize
	status       Status
	lastOpenedAt *time.Time
	lastClosedAt *time.Time
	guard        guard.ConstructorGuard
}

// NewLocker installs an available locker.
func NewLocker(id, locationID kernel.UUID, number int, size kernel.PackageSize) (*Locker, error) {
	return RestoreLocker(id, locationID, number, size, Available, nil, nil)
}

// RestoreLocker rebuilds a locker read back from the store.
//
// Parameters:
//   - number: position within the location, starting at 1
//   - lastOpenedAt, lastClosedAt: door timestamps, nil when never used
//
// Example:
//
//	l, err := locker.RestoreLocker(id, locationID, 3, kernel.SizeMedium, locker.Occupied, &openedAt, nil)
func RestoreLocker(
	id, locationID kernel.UUID,
	number int,
	size kernel.PackageSize,
	status Status,
	lastOpenedAt, lastClosedAt *time.Time,
) (*Locker, error) {
	l := &Locker{
		guard:        guard.NewConstructorGuard(),
		lastOpenedAt: lastOpenedAt,
		lastClosedAt: lastClosedAt,
	}

	if err := errors.Join(
		id.Validate(),
		locationID.Validate(),
		l.setNumber(number),
		size.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	l.id = id
	l.locationID = locationID
	l.size = size
	l.status = status
	return l, nil
}

func (l *Locker) Validate() error {
	if l == nil {
		return ErrLockerIsNotConstructed
	}
	return l.guard.Validate(ErrLockerIsNotConstructed)
}

func (l *Locker) IsEqual(other *Locker) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Locker) ID() kernel.UUID                { return l.id }
func (l *Locker) LocationID() kernel.UUID        { return l.locationID }
func (l *Locker) Number() int                    { return l.number }
func (l *Locker) Size() kernel.PackageSize       { return l.size }
func (l *Locker) Status() Status                 { return l.status }
func (l *Locker) LastOpenedAt() *time.Time       { return l.lastOpenedAt }
func (l *Locker) LastClosedAt() *time.Time       { return l.lastClosedAt }
func (l *Locker) IsAvailable() bool              { return l.status == Available }
func (l *Locker) Fits(s kernel.PackageSize) bool { return l.size == s }

// Occupy marks the locker as holding a package. The door is opened for the
// courier at now.
func (l *Locker) Occupy(now time.Time) error {
	next, err := l.status.Occupy()
	if err != nil {
		return err
	}
	l.status = next
	l.lastOpenedAt = &now
	return nil
}

// Release frees the locker once its package has been collected. The door is
// opened for the resident at now.
func (l *Locker) Release(now time.Time) error {
	next, err := l.status.Release()
	if err != nil {
		return err
	}
	l.status = next
	l.lastOpenedAt = &now
	return nil
}

// Close records the door being shut by the controller.
func (l *Locker) Close(now time.Time) {
	l.lastClosedAt = &now
}

func (l *Locker) StartMaintenance() error {
	next, err := l.status.StartMaintenance()
	if err != nil {
		return err
	}
	l.status = next
	return nil
}

func (l *Locker) ReturnToService() error {
	next, err := l.status.ReturnToService()
	if err != nil {
		return err
	}
	l.status = next
	return nil
}

func (l *Locker) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("locker number is invalid", fmt.Errorf("%d is not greater than 0", number))
	}
	l.number = number
	return nil
}
