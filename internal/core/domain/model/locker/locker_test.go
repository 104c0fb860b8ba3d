package locker_test

import (
	"testing"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) *locker.Locker {
	t.Helper()
	l, err := locker.NewLocker(kernel.NewUUID(), kernel.NewUUID(), 5, kernel.SizeMedium)
	require.NoError(t, err)
	return l
}

func TestNewLocker(t *testing.T) {
	t.Run("should create available locker", func(t *testing.T) {
		l := newLocker(t)

		require.NoError(t, l.Validate())
		assert.Equal(t, 5, l.Number())
		assert.Equal(t, kernel.SizeMedium, l.Size())
		assert.True(t, l.IsAvailable())
		assert.True(t, l.Fits(kernel.SizeMedium))
		assert.False(t, l.Fits(kernel.SizeLarge))
		assert.Nil(t, l.LastOpenedAt())
	})

	t.Run("should reject non positive number and bad size", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.NewUUID(), 0, "xl")

		assert.Nil(t, l)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.Contains(t, err.Error(), "package size")
	})

	t.Run("should reject unknown status on restore", func(t *testing.T) {
		_, err := locker.RestoreLocker(kernel.NewUUID(), kernel.NewUUID(), 1, kernel.SizeSmall, locker.Unknown, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLocker_OccupyRelease(t *testing.T) {
	l := newLocker(t)
	opened := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.Occupy(opened))
	assert.Equal(t, locker.Occupied, l.Status())
	assert.Equal(t, opened, *l.LastOpenedAt())

	err := l.Occupy(opened)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "cannot occupy a locker in occupied status")

	require.ErrorIs(t, l.StartMaintenance(), errs.ErrValueIsInvalid)

	collected := opened.Add(2 * time.Hour)
	require.NoError(t, l.Release(collected))
	assert.True(t, l.IsAvailable())
	assert.Equal(t, collected, *l.LastOpenedAt())

	require.ErrorIs(t, l.Release(collected), errs.ErrValueIsInvalid)

	l.Close(collected.Add(time.Minute))
	assert.Equal(t, collected.Add(time.Minute), *l.LastClosedAt())
}

func TestLocker_Maintenance(t *testing.T) {
	l := newLocker(t)

	require.NoError(t, l.StartMaintenance())
	require.NoError(t, l.StartMaintenance())
	assert.Equal(t, locker.Maintenance, l.Status())
	require.Error(t, l.Occupy(time.Now()))

	require.NoError(t, l.ReturnToService())
	assert.True(t, l.IsAvailable())
	require.Error(t, l.ReturnToService())
}
