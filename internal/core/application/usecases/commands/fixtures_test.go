package commands_test

import (
	"testing"
	"time"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/model/resident"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	location *location.Location
	resident *resident.Resident
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	loc, err := location.NewLocation(kernel.NewUUID(), "Green Meadows", "Tower B")
	require.NoError(t, err)

	mobile, err := kernel.NewMobile("9876543210")
	require.NoError(t, err)

	r, err := resident.NewResident(kernel.NewUUID(), loc.ID(), "A-101", "Asha Sharma", mobile, "asha@example.com")
	require.NoError(t, err)

	return fixture{location: loc, resident: r}
}

func (f fixture) locker(t *testing.T, number int, size kernel.PackageSize, status locker.Status) *locker.Locker {
	t.Helper()
	l, err := locker.RestoreLocker(kernel.NewUUID(), f.location.ID(), number, size, status, nil, nil)
	require.NoError(t, err)
	return l
}

func (f fixture) deposited(t *testing.T, held *locker.Locker, code string, attempts int) *delivery.Delivery {
	t.Helper()
	otp, err := delivery.NewOTP(code, fixedNow.Add(24*time.Hour))
	require.NoError(t, err)
	d, err := delivery.RestoreDelivery(delivery.Snapshot{
		ID:          kernel.NewUUID(),
		LocationID:  f.location.ID(),
		LockerID:    held.ID(),
		ResidentID:  f.resident.ID(),
		Details:     delivery.Details{TrackingNumber: "AWB1", Company: "BlueDart", PackageSize: held.Size()},
		OTP:         otp,
		OTPAttempts: attempts,
		Status:      delivery.Deposited,
		DepositedAt: fixedNow.Add(-time.Hour),
		CreatedAt:   fixedNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return d
}
