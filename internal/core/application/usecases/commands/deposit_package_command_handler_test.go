package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/core/ports"
	"parcellocker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type depositMocks struct {
	factory   *MockUoWFactory
	uow       *MockUoW
	residents *MockResidentRepository
	locations *MockLocationRepository
	lockers   *MockLockerRepository
	parcels   *MockDeliveryRepository
	syncLog   *MockHardwareSyncRepository
	notifier  *MockNotifier
}

func newDepositMocks() depositMocks {
	m := depositMocks{
		factory:   new(MockUoWFactory),
		uow:       new(MockUoW),
		residents: new(MockResidentRepository),
		locations: new(MockLocationRepository),
		lockers:   new(MockLockerRepository),
		parcels:   new(MockDeliveryRepository),
		syncLog:   new(MockHardwareSyncRepository),
		notifier:  new(MockNotifier),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("ResidentRepository").Return(m.residents).Maybe()
	m.uow.On("LocationRepository").Return(m.locations).Maybe()
	m.uow.On("LockerRepository").Return(m.lockers).Maybe()
	m.uow.On("DeliveryRepository").Return(m.parcels).Maybe()
	m.uow.On("HardwareSyncRepository").Return(m.syncLog).Maybe()
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

func (m depositMocks) handler() commands.DepositPackageCommandHandler {
	return commands.NewDepositPackageCommandHandler(
		depositFactory{m.factory},
		services.NewOTPGenerator(48*time.Hour),
		m.notifier,
		fixedClock(),
		time.Second,
		nil,
	)
}

func (m depositMocks) assert(t *testing.T) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.residents.AssertExpectations(t)
	m.locations.AssertExpectations(t)
	m.lockers.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.syncLog.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func mustDepositCommand(t *testing.T, f fixture, size string) commands.DepositPackageCommand {
	t.Helper()
	cmd, err := commands.NewDepositPackageCommand(f.location.ID(), "A-101", size, "AWB123", "BlueDart")
	require.NoError(t, err)
	return cmd
}

func TestDepositPackageCommandHandler_Handle_Success(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	free := f.locker(t, 5, kernel.SizeMedium, locker.Available)

	var stored *delivery.Delivery
	mock.InOrder(
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once(),
		m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once(),
		m.lockers.On("FindAllocationCandidates", mock.Anything, f.location.ID(), kernel.SizeMedium).
			Return([]*locker.Locker{free}, nil).Once(),
		m.lockers.On("Update", mock.Anything, free, locker.Available).Return(nil).Once(),
		m.parcels.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*delivery.Delivery) }).
			Return(nil).Once(),
		m.syncLog.On("Add", mock.Anything, mock.AnythingOfType("*lockerlog.HardwareSyncRecord")).Return(nil).Once(),
		m.notifier.On("Send", mock.Anything, "asha@example.com", ports.NotificationDeposit,
			mock.MatchedBy(func(p ports.NotificationPayload) bool {
				return p.LockerNumber == 5 && p.TowerName == "Tower B" && len(p.OTP) == 6
			})).
			Return(ports.NotificationResult{Delivered: true}, nil).Once(),
		m.parcels.On("Update", mock.Anything, mock.AnythingOfType("*delivery.Delivery"), delivery.Deposited).Return(nil).Once(),
		m.uow.On("Commit", mock.Anything).Return(nil).Once(),
	)

	result, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.NoError(t, err)
	assert.Equal(t, 5, result.LockerNumber)
	assert.Equal(t, "Tower B", result.TowerName)
	assert.Equal(t, "Green Meadows", result.SocietyName)
	assert.Equal(t, "Asha Sharma", result.ResidentName)
	assert.Equal(t, delivery.Deposited, result.Status)
	assert.Regexp(t, `^\d{6}$`, result.OTP)
	assert.Equal(t, fixedNow.Add(48*time.Hour), result.OTPExpiresAt)
	assert.True(t, result.NotificationSent)
	assert.Equal(t, locker.Occupied, free.Status())
	require.NotNil(t, stored)
	assert.True(t, stored.LockerID().IsEqual(free.ID()))
	assert.True(t, stored.NotificationSent())
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_NotifierFailureKeepsDeposit(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	free := f.locker(t, 2, kernel.SizeSmall, locker.Available)

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once()
	m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once()
	m.lockers.On("FindAllocationCandidates", mock.Anything, f.location.ID(), kernel.SizeSmall).Return([]*locker.Locker{free}, nil).Once()
	m.lockers.On("Update", mock.Anything, free, locker.Available).Return(nil).Once()
	m.parcels.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	m.syncLog.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	m.notifier.On("Send", mock.Anything, mock.Anything, ports.NotificationDeposit, mock.Anything).
		Return(ports.NotificationResult{}, errors.New("smtp: connection refused")).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()

	result, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "small"))

	require.NoError(t, err)
	assert.False(t, result.NotificationSent)
	assert.Equal(t, 2, result.LockerNumber)
	m.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_ResidentNotFound(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").
		Return(nil, errs.NewObjectNotFoundError("resident", "A-101")).Once()

	_, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.ErrorIs(t, err, commands.ErrResidentNotFound)
	assert.Equal(t, commands.KindResidentNotFound, commands.ErrorKind(err))
	m.lockers.AssertNotCalled(t, "FindAllocationCandidates", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_InactiveLocation(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	closed, err := location.RestoreLocation(f.location.ID(), f.location.SocietyName(), f.location.TowerName(), location.Inactive)
	require.NoError(t, err)
	f.location = closed

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once()
	m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once()

	_, err = m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.ErrorIs(t, err, commands.ErrLocationNotFound)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_NoLockerAvailable(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once()
	m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once()
	m.lockers.On("FindAllocationCandidates", mock.Anything, f.location.ID(), kernel.SizeLarge).Return([]*locker.Locker{}, nil).Once()

	_, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "large"))

	require.ErrorIs(t, err, commands.ErrNoLockerAvailable)
	assert.Equal(t, commands.KindNoLockerAvailable, commands.ErrorKind(err))
	m.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_LostLockerRace(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	free := f.locker(t, 1, kernel.SizeMedium, locker.Available)

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once()
	m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once()
	m.lockers.On("FindAllocationCandidates", mock.Anything, f.location.ID(), kernel.SizeMedium).Return([]*locker.Locker{free}, nil).Once()
	m.lockers.On("Update", mock.Anything, free, locker.Available).
		Return(errs.NewConflictError("occupy locker", nil)).Once()

	_, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, commands.IsRetryable(err))
	m.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_StorageFailure(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	free := f.locker(t, 1, kernel.SizeMedium, locker.Available)

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.residents.On("FindActiveByFlat", mock.Anything, f.location.ID(), "A-101").Return(f.resident, nil).Once()
	m.locations.On("Get", mock.Anything, f.location.ID()).Return(f.location, nil).Once()
	m.lockers.On("FindAllocationCandidates", mock.Anything, f.location.ID(), kernel.SizeMedium).Return([]*locker.Locker{free}, nil).Once()
	m.lockers.On("Update", mock.Anything, free, locker.Available).Return(nil).Once()
	m.parcels.On("Add", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.ErrorIs(t, err, errs.ErrStorage)
	assert.Equal(t, commands.KindStorage, commands.ErrorKind(err))
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.assert(t)
}

func TestDepositPackageCommandHandler_Handle_BeginError(t *testing.T) {
	f := newFixture(t)
	m := newDepositMocks()
	m.uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	_, err := m.handler().Handle(t.Context(), mustDepositCommand(t, f, "medium"))

	require.ErrorIs(t, err, errs.ErrStorage)
	assert.Contains(t, err.Error(), "begin error")
	m.uow.AssertNotCalled(t, "Rollback", mock.Anything)
	m.residents.AssertNotCalled(t, "FindActiveByFlat", mock.Anything, mock.Anything, mock.Anything)
}

func TestDepositPackageCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewDepositPackageCommandHandler(
		depositFactory{factory}, services.NewOTPGenerator(0), new(MockNotifier), fixedClock(), 0, nil,
	)

	_, err := handler.Handle(t.Context(), commands.DepositPackageCommand{})

	require.ErrorIs(t, err, commands.ErrDepositPackageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
