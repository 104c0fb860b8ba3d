package locker_test

import (
	"testing"

	"parcellocker/internal/core/domain/model/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    locker.Status
		apply   func(locker.Status) (locker.Status, error)
		want    locker.Status
		wantErr bool
	}{
		{"occupy available", locker.Available, locker.Status.Occupy, locker.Occupied, false},
		{"occupy occupied", locker.Occupied, locker.Status.Occupy, locker.Unknown, true},
		{"occupy maintenance", locker.Maintenance, locker.Status.Occupy, locker.Unknown, true},
		{"release occupied", locker.Occupied, locker.Status.Release, locker.Available, false},
		{"release available", locker.Available, locker.Status.Release, locker.Unknown, true},
		{"maintenance from available", locker.Available, locker.Status.StartMaintenance, locker.Maintenance, false},
		{"maintenance from occupied", locker.Occupied, locker.Status.StartMaintenance, locker.Unknown, true},
		{"return to service", locker.Maintenance, locker.Status.ReturnToService, locker.Available, false},
		{"return from unknown", locker.Unknown, locker.Status.ReturnToService, locker.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_ValidateAndString(t *testing.T) {
	for _, s := range []locker.Status{locker.Available, locker.Occupied, locker.Maintenance} {
		require.NoError(t, s.Validate())
		assert.Equal(t, string(s), s.String())
	}

	require.Error(t, locker.Unknown.Validate())
	require.Error(t, locker.Status("broken").Validate())
	assert.Equal(t, "unknown", locker.Unknown.String())
}
