package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcellocker/internal/pkg/errs"
)

// DeactivateResidentCommandHandler soft-deletes a resident. It takes the
// flat lock so it serializes with registrations and edits of the same flat,
// and refuses while the resident still has packages in lockers.
type DeactivateResidentCommandHandler struct {
	uowFactory ResidentUoWFactory
	txTimeout  time.Duration
	logger     *slog.Logger
}

func NewDeactivateResidentCommandHandler(
	uowFactory ResidentUoWFactory,
	txTimeout time.Duration,
	logger *slog.Logger,
) DeactivateResidentCommandHandler {
	return DeactivateResidentCommandHandler{
		uowFactory: uowFactory,
		txTimeout:  txTimeout,
		logger:     componentLogger(logger, "residents"),
	}
}

// Handle is idempotent: deactivating an inactive resident succeeds without
// writing.
func (h DeactivateResidentCommandHandler) Handle(ctx context.Context, cmd DeactivateResidentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	if err := h.deactivate(ctx, cmd); err != nil {
		return txFailure(ctx, "deactivate resident", err)
	}

	h.logger.InfoContext(ctx, "resident deactivated", "resident_id", cmd.ResidentID().String())
	return nil
}

func (h DeactivateResidentCommandHandler) deactivate(ctx context.Context, cmd DeactivateResidentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	residentRepo := uow.ResidentRepository()
	current, err := residentRepo.Get(ctx, cmd.ResidentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrResidentNotFound
	}
	if err != nil {
		return err
	}

	if !current.IsActive() {
		return nil
	}

	if err = residentRepo.LockFlat(ctx, current.LocationID(), current.FlatNumber()); err != nil {
		return err
	}

	if err = ensureNothingWaiting(ctx, uow, current); err != nil {
		return err
	}

	current.Deactivate()
	if err = residentRepo.Update(ctx, current); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
