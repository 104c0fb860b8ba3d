package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"
)

// UpdateResidentCommandHandler edits a resident under the same per-flat lock
// as registration, so a move or a reactivation cannot create a second active
// resident on a flat. A resident with packages still in lockers keeps the
// flat and the active status until they are collected: collection looks the
// resident up by flat.
type UpdateResidentCommandHandler struct {
	uowFactory ResidentUoWFactory
	txTimeout  time.Duration
	logger     *slog.Logger
}

func NewUpdateResidentCommandHandler(
	uowFactory ResidentUoWFactory,
	txTimeout time.Duration,
	logger *slog.Logger,
) UpdateResidentCommandHandler {
	return UpdateResidentCommandHandler{
		uowFactory: uowFactory,
		txTimeout:  txTimeout,
		logger:     componentLogger(logger, "residents"),
	}
}

// Handle returns the stored resident after the change.
func (h UpdateResidentCommandHandler) Handle(ctx context.Context, cmd UpdateResidentCommand) (*resident.Resident, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	updated, err := h.update(ctx, cmd)
	if err != nil {
		return nil, txFailure(ctx, "update resident", err)
	}

	h.logger.InfoContext(ctx, "resident updated",
		"resident_id", updated.ID().String(), "flat", updated.FlatNumber(), "status", updated.Status().String())
	return updated, nil
}

func (h UpdateResidentCommandHandler) update(ctx context.Context, cmd UpdateResidentCommand) (*resident.Resident, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	residentRepo := uow.ResidentRepository()
	current, err := residentRepo.Get(ctx, cmd.ResidentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrResidentNotFound
	}
	if err != nil {
		return nil, err
	}

	status := cmd.Status()
	if status == "" {
		status = current.Status()
	}

	moving := current.FlatNumber() != cmd.FlatNumber()
	leaving := current.IsActive() && status == resident.Inactive
	if moving || leaving {
		if err = ensureNothingWaiting(ctx, uow, current); err != nil {
			return nil, err
		}
	}

	if status == resident.Active {
		if err = residentRepo.LockFlat(ctx, current.LocationID(), cmd.FlatNumber()); err != nil {
			return nil, err
		}

		occupant, findErr := residentRepo.FindActiveByFlat(ctx, current.LocationID(), cmd.FlatNumber())
		switch {
		case findErr == nil && !occupant.ID().IsEqual(current.ID()):
			return nil, ErrFlatAlreadyOccupied
		case findErr != nil && !errors.Is(findErr, errs.ErrObjectNotFound):
			return nil, findErr
		}
	}

	if err = current.Change(cmd.FlatNumber(), cmd.FullName(), cmd.Mobile(), cmd.Email(), status); err != nil {
		return nil, err
	}

	if err = residentRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}

// ensureNothingWaiting rejects the change while r has deposited packages.
func ensureNothingWaiting(ctx context.Context, uow ResidentUoW, r *resident.Resident) error {
	waiting, err := uow.DeliveryRepository().CountDeposited(ctx, r.ID(), r.LocationID())
	if err != nil {
		return err
	}
	if waiting > 0 {
		return ErrResidentHasActiveDeliveries
	}
	return nil
}
