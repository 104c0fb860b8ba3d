package services

import (
	"errors"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
)

// ErrNoLockerAvailable is returned when none of the candidates can take the
// package.
var ErrNoLockerAvailable = errors.New("no locker available")

// LockerAllocator assigns a package to a locker.
//
// Business rules:
//   - only available lockers of exactly the package size qualify
//   - the lowest locker number wins, so allocation is deterministic
//   - the chosen locker is occupied as part of the allocation
//
// Candidates normally come from a locked store query that already applies
// these filters; the allocator re-checks them so that a stale or widened
// candidate list can never double-book a locker.
type LockerAllocator struct{}

func NewLockerAllocator() LockerAllocator {
	return LockerAllocator{}
}

// Allocate occupies and returns the best candidate for size at now.
func (a LockerAllocator) Allocate(size kernel.PackageSize, candidates []*locker.Locker, now time.Time) (*locker.Locker, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	best, err := a.findBestLocker(size, candidates)
	if err != nil {
		return nil, err
	}

	if err = best.Occupy(now); err != nil {
		return nil, err
	}

	return best, nil
}

func (a LockerAllocator) findBestLocker(size kernel.PackageSize, candidates []*locker.Locker) (*locker.Locker, error) {
	var best *locker.Locker

	for _, l := range candidates {
		if err := l.Validate(); err != nil {
			return nil, err
		}

		if !l.IsAvailable() || !l.Fits(size) {
			continue
		}

		if best == nil || l.Number() < best.Number() {
			best = l
		}
	}

	if best == nil {
		return nil, ErrNoLockerAvailable
	}

	return best, nil
}
