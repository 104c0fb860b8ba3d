package errs_test

import (
	"context"
	"errors"
	"testing"

	"parcellocker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("residentId", "123")

		assert.Equal(t, "residentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("residentId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: residentId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with non-string ID", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("lockerNumber", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("mobile")

		assert.Equal(t, "mobile", err.ParamName)
		assert.Equal(t, "value is invalid: mobile", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be 10 digits")
		err := errs.NewValueIsInvalidErrorWithCause("mobile", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: mobile (cause: must be 10 digits)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("otpAttempts", 4, 0, 3)

		assert.Equal(t, 4, err.Value)
		assert.Equal(t, "value is invalid: 4 is otpAttempts, min value is 0, max value is 3", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("lockerNumber", -5, 1, 999, cause)

		assert.Equal(t,
			"value is invalid: -5 is lockerNumber, min value is 1, max value is 999 (cause: validation failed)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("flatNumber")
	assert.Equal(t, "value is required: flatNumber", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("flatNumber", errors.New("blank"))
	assert.Equal(t, "value is required: flatNumber (cause: blank)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	t.Run("matches sentinel and cause", func(t *testing.T) {
		err := errs.NewConflictError("occupy locker", context.DeadlineExceeded)

		assert.Equal(t, "conflict: occupy locker (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewConflictError("collect delivery", nil)

		assert.Equal(t, "conflict: collect delivery", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := errs.NewStorageError("insert delivery", cause)

	assert.Equal(t, "storage error: insert delivery (cause: connection reset by peer)", err.Error())
	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, errs.ErrConflict)

	var storageErr *errs.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "insert delivery", storageErr.Operation)
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "storage error", errs.ErrStorage.Error())
}
