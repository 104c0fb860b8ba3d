package commands

import (
	"context"
	"errors"
	"fmt"
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

// CollectResult tells the resident which door to go to.
type CollectResult struct {
	DeliveryID        kernel.UUID
	LockerNumber      int
	TowerName         string
	RemainingPackages int64
	Instruction       string
	CollectedAt       time.Time
}

// CollectPackageCommandHandler validates a resident's OTP and releases the
// locker holding the matching package.
//
// The resident's deposited deliveries are locked for the whole attempt, so a
// given delivery is collected at most once and its attempt counter only
// grows. A wrong code commits the incremented counters (and the audit line)
// but never touches delivery or locker status. The confirmation notice is
// sent after commit.
type CollectPackageCommandHandler struct {
	uowFactory CollectUoWFactory
	verifier   services.OTPVerifier
	notifier   ports.Notifier
	clock      ports.Clock
	txTimeout  time.Duration
	logger     *slog.Logger
}

func NewCollectPackageCommandHandler(
	uowFactory CollectUoWFactory,
	verifier services.OTPVerifier,
	notifier ports.Notifier,
	clock ports.Clock,
	txTimeout time.Duration,
	logger *slog.Logger,
) CollectPackageCommandHandler {
	return CollectPackageCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
		clock:      clock,
		txTimeout:  txTimeout,
		logger:     componentLogger(logger, "collect"),
	}
}

// collection carries what the post-commit notification needs.
type collection struct {
	result   CollectResult
	owner    *resident.Resident
	loc      *location.Location
	released *locker.Locker
	parcel   *delivery.Delivery
}

// Handle releases the package whose code the resident entered.
//
// Returns:
//   - CollectResult: the door to open and how many packages remain
//   - error: ErrResidentNotFound, ErrIdentityMismatch, ErrNoActiveDelivery,
//     an *InvalidOTPError or ErrAttemptsExceeded for refusals; conflicts and
//     storage failures as in DepositPackageCommandHandler.Handle
func (h CollectPackageCommandHandler) Handle(ctx context.Context, cmd CollectPackageCommand) (CollectResult, error) {
	if err := cmd.Validate(); err != nil {
		return CollectResult{}, err
	}

	txCtx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	done, err := h.collect(txCtx, cmd)
	if err != nil {
		err = txFailure(txCtx, "collect package", err)
		if errors.Is(err, errs.ErrStorage) {
			h.logger.ErrorContext(ctx, "collect failed", "flat", cmd.FlatNumber(), "error", err)
		}
		return CollectResult{}, err
	}

	h.logger.InfoContext(ctx, "package collected",
		"delivery_id", done.result.DeliveryID.String(),
		"locker_number", done.result.LockerNumber,
		"remaining", done.result.RemainingPackages,
	)

	h.notifyCollection(ctx, done)
	return done.result, nil
}

func (h CollectPackageCommandHandler) collect(ctx context.Context, cmd CollectPackageCommand) (collection, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return collection{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()

	owner, err := uow.ResidentRepository().FindActiveByContact(ctx, cmd.LocationID(), cmd.Mobile(), cmd.FlatNumber())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return collection{}, ErrResidentNotFound
	}
	if err != nil {
		return collection{}, err
	}

	if !owner.MatchesName(cmd.ResidentName()) {
		return collection{}, ErrIdentityMismatch
	}

	deliveryRepo := uow.DeliveryRepository()
	deposited, err := deliveryRepo.FindDepositedForUpdate(ctx, owner.ID(), cmd.LocationID())
	if err != nil {
		return collection{}, err
	}

	verdict, err := h.verifier.Verify(deposited, cmd.OTP(), now)
	if err != nil {
		return collection{}, err
	}

	switch verdict.Outcome {
	case services.OTPNoActiveDelivery:
		return collection{}, ErrNoActiveDelivery
	case services.OTPAccepted:
		return h.release(ctx, uow, owner, verdict.Delivery, cmd, now)
	case services.OTPRejected, services.OTPLockedOut:
		return collection{}, h.refuse(ctx, uow, owner, deposited, verdict, cmd.OTP(), now)
	default:
		return collection{}, fmt.Errorf("unexpected otp outcome %s", verdict.Outcome)
	}
}

// refuse persists the consequences of a wrong or locked out attempt and
// returns the business error for it. Nothing but counters and audit lines
// is written.
func (h CollectPackageCommandHandler) refuse(
	ctx context.Context,
	uow CollectUoW,
	owner *resident.Resident,
	deposited []*delivery.Delivery,
	verdict services.OTPVerdict,
	otp string,
	now time.Time,
) error {
	deliveryRepo := uow.DeliveryRepository()
	for _, d := range verdict.Charged {
		if err := deliveryRepo.Update(ctx, d, delivery.Deposited); err != nil {
			return err
		}
	}

	audited, action := verdict.Charged, lockerlog.AuditCollectFailed
	if verdict.Outcome == services.OTPLockedOut {
		action = lockerlog.AuditCollectLocked
		if len(audited) == 0 {
			audited = deposited
		}
	}

	auditRepo := uow.AccessAuditRepository()
	for _, d := range audited {
		rec, err := lockerlog.NewAccessAudit(d.ID(), d.LockerID(), action, owner.ActorDetails(), otp, false, now)
		if err != nil {
			return err
		}
		if err = auditRepo.Append(ctx, rec); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "collect attempt refused",
		"resident_id", owner.ID().String(),
		"outcome", verdict.Outcome.String(),
		"attempt", verdict.Attempt,
	)

	if verdict.Outcome == services.OTPLockedOut {
		return ErrAttemptsExceeded
	}
	return &InvalidOTPError{Attempt: verdict.Attempt, Max: h.verifier.MaxAttempts()}
}

func (h CollectPackageCommandHandler) release(
	ctx context.Context,
	uow CollectUoW,
	owner *resident.Resident,
	parcel *delivery.Delivery,
	cmd CollectPackageCommand,
	now time.Time,
) (collection, error) {
	loc, err := uow.LocationRepository().Get(ctx, parcel.LocationID())
	if err != nil {
		return collection{}, err
	}

	lockerRepo := uow.LockerRepository()
	held, err := lockerRepo.Get(ctx, parcel.LockerID())
	if err != nil {
		return collection{}, err
	}

	if err = h.requestCollect(ctx, uow.HardwareSyncRepository(), parcel, held, loc, owner, cmd.OTP(), now); err != nil {
		return collection{}, err
	}

	if err = parcel.Collect(now); err != nil {
		return collection{}, errs.NewStorageError("collect delivery", err)
	}
	if err = uow.DeliveryRepository().Update(ctx, parcel, delivery.Deposited); err != nil {
		return collection{}, err
	}

	if err = held.Release(now); err != nil {
		return collection{}, errs.NewStorageError("release locker", err)
	}
	if err = lockerRepo.Update(ctx, held, locker.Occupied); err != nil {
		return collection{}, err
	}

	rec, err := lockerlog.NewAccessAudit(parcel.ID(), held.ID(), lockerlog.AuditCollectRequested, owner.ActorDetails(), cmd.OTP(), true, now)
	if err != nil {
		return collection{}, err
	}
	if err = uow.AccessAuditRepository().Append(ctx, rec); err != nil {
		return collection{}, err
	}

	remaining, err := uow.DeliveryRepository().CountDeposited(ctx, owner.ID(), parcel.LocationID())
	if err != nil {
		return collection{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return collection{}, err
	}

	return collection{
		result: CollectResult{
			DeliveryID:        parcel.ID(),
			LockerNumber:      held.Number(),
			TowerName:         loc.TowerName(),
			RemainingPackages: remaining,
			Instruction:       Instruction(held.Number(), remaining),
			CollectedAt:       now,
		},
		owner:    owner,
		loc:      loc,
		released: held,
		parcel:   parcel,
	}, nil
}

// requestCollect supersedes the delivery's active deposit command, or issues
// a fresh collect command when the controller already consumed it.
func (h CollectPackageCommandHandler) requestCollect(
	ctx context.Context,
	repo ports.HardwareSyncRepository,
	parcel *delivery.Delivery,
	held *locker.Locker,
	loc *location.Location,
	owner *resident.Resident,
	otp string,
	now time.Time,
) error {
	active, err := repo.FindActiveByDelivery(ctx, parcel.ID())
	switch {
	case err == nil:
		if err = active.RequestCollect(otp, now); err != nil {
			return err
		}
		return repo.Update(ctx, active)
	case errors.Is(err, errs.ErrObjectNotFound):
		rec, buildErr := lockerlog.NewCollectRequest(kernel.NewUUID(), syncTarget(parcel, held, loc, owner), otp, now)
		if buildErr != nil {
			return buildErr
		}
		return repo.Add(ctx, rec)
	default:
		return err
	}
}

func (h CollectPackageCommandHandler) notifyCollection(ctx context.Context, done collection) {
	res, err := send(ctx, h.notifier, done.owner.Email(), ports.NotificationCollection, ports.NotificationPayload{
		ResidentName:   done.owner.FullName(),
		FlatNumber:     done.owner.FlatNumber(),
		TowerName:      done.loc.TowerName(),
		SocietyName:    done.loc.SocietyName(),
		LockerNumber:   done.released.Number(),
		PackageSize:    done.parcel.PackageSize().String(),
		TrackingNumber: done.parcel.TrackingNumber(),
		Company:        done.parcel.Company(),
		OccurredAt:     done.result.CollectedAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "collection notification failed",
			"delivery_id", done.parcel.ID().String(), "error", err)
		return
	}
	if !res.Delivered {
		h.logger.InfoContext(ctx, "collection notification not delivered",
			"delivery_id", done.parcel.ID().String())
	}
}

// Instruction is the text shown to the resident after a successful collect.
func Instruction(lockerNumber int, remaining int64) string {
	text := fmt.Sprintf("Proceed to locker %d", lockerNumber)
	if remaining > 0 {
		text += fmt.Sprintf(". You have %d more package(s) waiting.", remaining)
	}
	return text
}
