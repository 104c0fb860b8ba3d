package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/model/lockerlog"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/core/ports"
	"parcellocker/internal/pkg/errs"
)

// DepositResult is what the courier screen shows after a successful deposit.
type DepositResult struct {
	DeliveryID       kernel.UUID
	LockerNumber     int
	TowerName        string
	SocietyName      string
	FlatNumber       string
	ResidentName     string
	PackageSize      kernel.PackageSize
	TrackingNumber   string
	Company          string
	OTP              string
	OTPExpiresAt     time.Time
	Status           delivery.Status
	NotificationSent bool
}

// DepositPackageCommandHandler allocates a locker to an incoming package.
//
// Everything from the resident lookup to the notification flag runs in one
// transaction: either the delivery, the occupied locker and the deposit sync
// row all exist afterwards, or none of them does. The notifier is invoked
// inside the transaction so its outcome can be stored with the delivery. It
// runs on its own context bounded by half the remaining transaction time, so
// a slow or failing notifier only leaves the flag false.
//
// Example:
//
//	handler := NewDepositPackageCommandHandler(uowFactory, services.NewOTPGenerator(48*time.Hour),
//	    notifier, ports.ClockFunc(time.Now), DefaultTxTimeout, logger)
//	cmd, _ := NewDepositPackageCommand(locationID, "A-101", "small", "AWB77", "BlueDart")
//	result, err := handler.Handle(ctx, cmd)
//	if IsRetryable(err) {
//	    // nothing was written; resubmit
//	}
type DepositPackageCommandHandler struct {
	uowFactory   DepositUoWFactory
	allocator    services.LockerAllocator
	otpGenerator services.OTPGenerator
	notifier     ports.Notifier
	clock        ports.Clock
	txTimeout    time.Duration
	logger       *slog.Logger
}

// NewDepositPackageCommandHandler wires the deposit flow. A non-positive
// txTimeout falls back to DefaultTxTimeout.
func NewDepositPackageCommandHandler(
	uowFactory DepositUoWFactory,
	otpGenerator services.OTPGenerator,
	notifier ports.Notifier,
	clock ports.Clock,
	txTimeout time.Duration,
	logger *slog.Logger,
) DepositPackageCommandHandler {
	return DepositPackageCommandHandler{
		uowFactory:   uowFactory,
		allocator:    services.NewLockerAllocator(),
		otpGenerator: otpGenerator,
		notifier:     notifier,
		clock:        clock,
		txTimeout:    txTimeout,
		logger:       componentLogger(logger, "deposit"),
	}
}

// Handle deposits one package.
//
// Returns:
//   - DepositResult: the locker, the OTP and whether the resident was told
//   - error: ErrResidentNotFound, ErrLocationNotFound or ErrNoLockerAvailable
//     for business refusals, a ConflictError when the transaction lost a
//     race or ran out of time, otherwise a StorageError
func (h DepositPackageCommandHandler) Handle(ctx context.Context, cmd DepositPackageCommand) (DepositResult, error) {
	if err := cmd.Validate(); err != nil {
		return DepositResult{}, err
	}

	ctx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	result, err := h.deposit(ctx, cmd)
	if err != nil {
		err = txFailure(ctx, "deposit package", err)
		if errors.Is(err, errs.ErrStorage) {
			h.logger.ErrorContext(ctx, "deposit failed", "flat", cmd.FlatNumber(), "error", err)
		}
		return DepositResult{}, err
	}

	h.logger.InfoContext(ctx, "package deposited",
		"delivery_id", result.DeliveryID.String(),
		"locker_number", result.LockerNumber,
		"flat", result.FlatNumber,
		"notification_sent", result.NotificationSent,
	)
	return result, nil
}

func (h DepositPackageCommandHandler) deposit(ctx context.Context, cmd DepositPackageCommand) (DepositResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DepositResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()

	owner, err := uow.ResidentRepository().FindActiveByFlat(ctx, cmd.LocationID(), cmd.FlatNumber())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DepositResult{}, ErrResidentNotFound
	}
	if err != nil {
		return DepositResult{}, err
	}

	loc, err := uow.LocationRepository().Get(ctx, cmd.LocationID())
	if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && !loc.IsActive()) {
		return DepositResult{}, ErrLocationNotFound
	}
	if err != nil {
		return DepositResult{}, err
	}

	lockerRepo := uow.LockerRepository()
	candidates, err := lockerRepo.FindAllocationCandidates(ctx, cmd.LocationID(), cmd.PackageSize())
	if err != nil {
		return DepositResult{}, err
	}

	allocated, err := h.allocator.Allocate(cmd.PackageSize(), candidates, now)
	if err != nil {
		return DepositResult{}, err
	}

	if err = lockerRepo.Update(ctx, allocated, locker.Available); err != nil {
		return DepositResult{}, err
	}

	otp, err := h.otpGenerator.Generate(now)
	if err != nil {
		return DepositResult{}, err
	}

	parcel, err := delivery.NewDelivery(
		kernel.NewUUID(), cmd.LocationID(), allocated.ID(), owner.ID(),
		delivery.Details{
			TrackingNumber: cmd.TrackingNumber(),
			Company:        cmd.Company(),
			PackageSize:    cmd.PackageSize(),
		},
		otp,
		now,
	)
	if err != nil {
		return DepositResult{}, err
	}

	deliveryRepo := uow.DeliveryRepository()
	if err = deliveryRepo.Add(ctx, parcel); err != nil {
		return DepositResult{}, err
	}

	syncRecord, err := lockerlog.NewDepositRequest(kernel.NewUUID(), syncTarget(parcel, allocated, loc, owner), otp.Code(), now)
	if err != nil {
		return DepositResult{}, err
	}
	if err = uow.HardwareSyncRepository().Add(ctx, syncRecord); err != nil {
		return DepositResult{}, err
	}

	if h.notifyDeposit(ctx, owner, loc, allocated, parcel) {
		parcel.MarkNotified(true)
		if err = deliveryRepo.Update(ctx, parcel, delivery.Deposited); err != nil {
			return DepositResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DepositResult{}, err
	}

	return DepositResult{
		DeliveryID:       parcel.ID(),
		LockerNumber:     allocated.Number(),
		TowerName:        loc.TowerName(),
		SocietyName:      loc.SocietyName(),
		FlatNumber:       owner.FlatNumber(),
		ResidentName:     owner.FullName(),
		PackageSize:      parcel.PackageSize(),
		TrackingNumber:   parcel.TrackingNumber(),
		Company:          parcel.Company(),
		OTP:              otp.Code(),
		OTPExpiresAt:     otp.ExpiresAt(),
		Status:           parcel.Status(),
		NotificationSent: parcel.NotificationSent(),
	}, nil
}

func (h DepositPackageCommandHandler) notifyDeposit(
	ctx context.Context,
	owner *resident.Resident,
	loc *location.Location,
	allocated *locker.Locker,
	parcel *delivery.Delivery,
) bool {
	res, err := send(ctx, h.notifier, owner.Email(), ports.NotificationDeposit, ports.NotificationPayload{
		ResidentName:   owner.FullName(),
		FlatNumber:     owner.FlatNumber(),
		TowerName:      loc.TowerName(),
		SocietyName:    loc.SocietyName(),
		LockerNumber:   allocated.Number(),
		PackageSize:    parcel.PackageSize().String(),
		TrackingNumber: parcel.TrackingNumber(),
		Company:        parcel.Company(),
		OTP:            parcel.OTP().Code(),
		OTPExpiresAt:   parcel.OTP().ExpiresAt(),
		OccurredAt:     parcel.DepositedAt(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "deposit notification failed",
			"delivery_id", parcel.ID().String(), "error", err)
		return false
	}
	return res.Delivered
}

func syncTarget(
	parcel *delivery.Delivery,
	l *locker.Locker,
	loc *location.Location,
	owner *resident.Resident,
) lockerlog.SyncTarget {
	return lockerlog.SyncTarget{
		DeliveryID:     parcel.ID(),
		LockerID:       l.ID(),
		LocationID:     loc.ID(),
		LockerNumber:   l.Number(),
		TowerName:      loc.TowerName(),
		ResidentMobile: owner.Mobile().String(),
	}
}
