package commands_test

import (
	"context"
	"time"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/model/lockerlog"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, l *location.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

type MockResidentRepository struct{ mock.Mock }

func (m *MockResidentRepository) Add(ctx context.Context, r *resident.Resident) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResidentRepository) Update(ctx context.Context, r *resident.Resident) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResidentRepository) Get(ctx context.Context, id kernel.UUID) (*resident.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindActiveByFlat(ctx context.Context, locationID kernel.UUID, flat string) (*resident.Resident, error) {
	args := m.Called(ctx, locationID, flat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindActiveByContact(
	ctx context.Context, locationID kernel.UUID, mobile kernel.Mobile, flat string,
) (*resident.Resident, error) {
	args := m.Called(ctx, locationID, mobile, flat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) LockFlat(ctx context.Context, locationID kernel.UUID, flat string) error {
	return m.Called(ctx, locationID, flat).Error(0)
}

type MockLockerRepository struct{ mock.Mock }

func (m *MockLockerRepository) Add(ctx context.Context, l *locker.Locker) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLockerRepository) Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*locker.Locker), args.Error(1)
}

func (m *MockLockerRepository) Update(ctx context.Context, l *locker.Locker, expected locker.Status) error {
	return m.Called(ctx, l, expected).Error(0)
}

func (m *MockLockerRepository) FindAllocationCandidates(
	ctx context.Context, locationID kernel.UUID, size kernel.PackageSize,
) ([]*locker.Locker, error) {
	args := m.Called(ctx, locationID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*locker.Locker), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery, expected delivery.Status) error {
	return m.Called(ctx, d, expected).Error(0)
}

func (m *MockDeliveryRepository) FindDepositedForUpdate(
	ctx context.Context, residentID, locationID kernel.UUID,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, residentID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountDeposited(ctx context.Context, residentID, locationID kernel.UUID) (int64, error) {
	args := m.Called(ctx, residentID, locationID)
	return args.Get(0).(int64), args.Error(1)
}

type MockHardwareSyncRepository struct{ mock.Mock }

func (m *MockHardwareSyncRepository) Add(ctx context.Context, r *lockerlog.HardwareSyncRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockHardwareSyncRepository) Update(ctx context.Context, r *lockerlog.HardwareSyncRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockHardwareSyncRepository) FindActiveByDelivery(
	ctx context.Context, deliveryID kernel.UUID,
) (*lockerlog.HardwareSyncRecord, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lockerlog.HardwareSyncRecord), args.Error(1)
}

func (m *MockHardwareSyncRepository) PurgeCollected(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAccessAuditRepository struct{ mock.Mock }

func (m *MockAccessAuditRepository) Append(ctx context.Context, r lockerlog.AccessAuditRecord) error {
	return m.Called(ctx, r).Error(0)
}

// MockUoW satisfies every unit of work surface used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.Called().Get(0).(ports.LocationRepository)
}

func (m *MockUoW) ResidentRepository() ports.ResidentRepository {
	return m.Called().Get(0).(ports.ResidentRepository)
}

func (m *MockUoW) LockerRepository() ports.LockerRepository {
	return m.Called().Get(0).(ports.LockerRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) HardwareSyncRepository() ports.HardwareSyncRepository {
	return m.Called().Get(0).(ports.HardwareSyncRepository)
}

func (m *MockUoW) AccessAuditRepository() ports.AccessAuditRepository {
	return m.Called().Get(0).(ports.AccessAuditRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) uow() *MockUoW {
	return m.MethodCalled("Create").Get(0).(*MockUoW)
}

type (
	depositFactory  struct{ *MockUoWFactory }
	collectFactory  struct{ *MockUoWFactory }
	residentFactory struct{ *MockUoWFactory }
	syncLogFactory  struct{ *MockUoWFactory }
)

func (f depositFactory) Create() commands.DepositUoW   { return f.uow() }
func (f collectFactory) Create() commands.CollectUoW   { return f.uow() }
func (f residentFactory) Create() commands.ResidentUoW { return f.uow() }
func (f syncLogFactory) Create() commands.SyncLogUoW   { return f.uow() }

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(
	ctx context.Context, contact string, kind ports.NotificationKind, payload ports.NotificationPayload,
) (ports.NotificationResult, error) {
	args := m.Called(ctx, contact, kind, payload)
	return args.Get(0).(ports.NotificationResult), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}
