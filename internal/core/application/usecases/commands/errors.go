package commands

import (
	"context"
	"errors"
	"fmt"

	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/pkg/errs"
)

// Business-rule failures. Each one aborts its transaction.
var (
	ErrResidentNotFound = errors.New("resident not found")
	// ErrNoActiveDelivery is what a repeated collect sees once the package
	// is gone. It is reported as a missing resident.
	ErrNoActiveDelivery    = fmt.Errorf("no active delivery: %w", ErrResidentNotFound)
	ErrNoLockerAvailable   = services.ErrNoLockerAvailable
	ErrIdentityMismatch    = errors.New("resident details do not match our records")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")
	ErrAttemptsExceeded    = errors.New("maximum otp attempts exceeded, please contact support")
	ErrLocationNotFound    = errors.New("location not found")
	ErrFlatAlreadyOccupied = errors.New("flat already has an active resident")
	// ErrResidentHasActiveDeliveries blocks deactivation while packages wait.
	ErrResidentHasActiveDeliveries = errors.New(
		"cannot deactivate a resident with active deliveries, wait until packages are collected",
	)
)

// InvalidOTPError is a wrong or expired code with attempts left.
type InvalidOTPError struct {
	Attempt int
	Max     int
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("Invalid OTP. Attempt %d of %d", e.Attempt, e.Max)
}

func (e *InvalidOTPError) Unwrap() error {
	return ErrInvalidOrExpiredOTP
}

// Stable machine-readable error kinds.
const (
	KindValidation          = "validation_error"
	KindResidentNotFound    = "resident_not_found"
	KindNoLockerAvailable   = "no_locker_available"
	KindIdentityMismatch    = "identity_mismatch"
	KindInvalidOrExpiredOTP = "invalid_or_expired_otp"
	KindAttemptsExceeded    = "attempts_exceeded"
	KindLocationNotFound    = "location_not_found"
	KindFlatAlreadyOccupied = "flat_already_occupied"
	KindActiveDeliveries    = "active_deliveries"
	KindConflict            = "conflict"
	KindStorage             = "storage_error"
)

// ErrorKind maps any error returned by a handler to its stable kind.
// Unclassified errors are reported as storage errors.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrResidentNotFound):
		return KindResidentNotFound
	case errors.Is(err, ErrNoLockerAvailable):
		return KindNoLockerAvailable
	case errors.Is(err, ErrIdentityMismatch):
		return KindIdentityMismatch
	case errors.Is(err, ErrInvalidOrExpiredOTP):
		return KindInvalidOrExpiredOTP
	case errors.Is(err, ErrAttemptsExceeded):
		return KindAttemptsExceeded
	case errors.Is(err, ErrLocationNotFound):
		return KindLocationNotFound
	case errors.Is(err, ErrFlatAlreadyOccupied):
		return KindFlatAlreadyOccupied
	case errors.Is(err, ErrResidentHasActiveDeliveries):
		return KindActiveDeliveries
	case errors.Is(err, errs.ErrConflict):
		return KindConflict
	case errors.Is(err, errs.ErrStorage):
		return KindStorage
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindStorage
	}
}

// IsRetryable reports whether the caller may resubmit the same request.
func IsRetryable(err error) bool {
	return errors.Is(err, errs.ErrConflict)
}

// txFailure normalizes an error raised inside a transaction. Business and
// validation errors pass through. Anything else raised once the deadline
// passed or the caller cancelled is a Conflict, even when the store already
// reported it as a storage error. Remaining typed errors pass through and the
// rest is wrapped as a StorageError.
func txFailure(ctx context.Context, operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case isBusinessFailure(err):
		return err
	case errors.Is(err, errs.ErrConflict):
		return err
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.NewConflictError(operation, errors.Join(err, ctx.Err()))
	case errors.Is(err, errs.ErrStorage), errors.Is(err, errs.ErrObjectNotFound):
		return err
	default:
		return errs.NewStorageError(operation, err)
	}
}

func isBusinessFailure(err error) bool {
	for _, target := range []error{
		ErrResidentNotFound, ErrNoLockerAvailable, ErrIdentityMismatch, ErrInvalidOrExpiredOTP,
		ErrAttemptsExceeded, ErrLocationNotFound, ErrFlatAlreadyOccupied, ErrResidentHasActiveDeliveries,
		errs.ErrValueIsRequired, errs.ErrValueIsInvalid, errs.ErrValueIsOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
