package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"
)

// RegisterResidentCommandHandler enforces "at most one active resident per
// flat". The store has no unique constraint for it, so the check and the
// insert run under a per-flat lock held until commit.
type RegisterResidentCommandHandler struct {
	uowFactory ResidentUoWFactory
	txTimeout  time.Duration
	logger     *slog.Logger
}

func NewRegisterResidentCommandHandler(
	uowFactory ResidentUoWFactory,
	txTimeout time.Duration,
	logger *slog.Logger,
) RegisterResidentCommandHandler {
	return RegisterResidentCommandHandler{
		uowFactory: uowFactory,
		txTimeout:  txTimeout,
		logger:     componentLogger(logger, "residents"),
	}
}

// Handle returns the new resident's identifier.
func (h RegisterResidentCommandHandler) Handle(ctx context.Context, cmd RegisterResidentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	ctx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	id, err := h.register(ctx, cmd)
	if err != nil {
		return kernel.UUID{}, txFailure(ctx, "register resident", err)
	}

	h.logger.InfoContext(ctx, "resident registered", "resident_id", id.String(), "flat", cmd.FlatNumber())
	return id, nil
}

func (h RegisterResidentCommandHandler) register(ctx context.Context, cmd RegisterResidentCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loc, err := uow.LocationRepository().Get(ctx, cmd.LocationID())
	if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && !loc.IsActive()) {
		return kernel.UUID{}, ErrLocationNotFound
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	residentRepo := uow.ResidentRepository()
	if err = residentRepo.LockFlat(ctx, cmd.LocationID(), cmd.FlatNumber()); err != nil {
		return kernel.UUID{}, err
	}

	_, err = residentRepo.FindActiveByFlat(ctx, cmd.LocationID(), cmd.FlatNumber())
	switch {
	case err == nil:
		return kernel.UUID{}, ErrFlatAlreadyOccupied
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, err
	}

	r, err := resident.NewResident(kernel.NewUUID(), cmd.LocationID(), cmd.FlatNumber(), cmd.FullName(), cmd.Mobile(), cmd.Email())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = residentRepo.Add(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return r.ID(), nil
}
