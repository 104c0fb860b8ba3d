package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"parcellocker/internal/adapters/out/postgres/deliveryrepo"
	"parcellocker/internal/adapters/out/postgres/lockerlogrepo"
	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/core/ports"
	"parcellocker/internal/pkg/errs"
)

// stalledNotifier answers after delay and ignores its context.
type stalledNotifier struct {
	delay   time.Duration
	release chan struct{}
}

func (n stalledNotifier) Send(
	context.Context,
	string,
	ports.NotificationKind,
	ports.NotificationPayload,
) (ports.NotificationResult, error) {
	select {
	case <-time.After(n.delay):
	case <-n.release:
	}
	return ports.NotificationResult{Delivered: true}, nil
}

// lateCommitUoWs commits only after the transaction deadline has passed.
type lateCommitUoWs struct {
	inner depositUoWs
}

type lateCommitUoW struct {
	ports.UnitOfWork
}

func (a lateCommitUoWs) Create() commands.DepositUoW {
	return lateCommitUoW{UnitOfWork: a.inner.f.Create()}
}

func (u lateCommitUoW) Commit(ctx context.Context) error {
	<-ctx.Done()
	return u.UnitOfWork.Commit(ctx)
}

func (s *EngineSQLiteTestSuite) depositHandler(
	uows commands.DepositUoWFactory,
	notifier ports.Notifier,
	timeout time.Duration,
) commands.DepositPackageCommandHandler {
	return commands.NewDepositPackageCommandHandler(
		uows,
		services.NewOTPGenerator(services.DefaultOTPValidity),
		notifier,
		ports.ClockFunc(func() time.Time { return engineNow }),
		timeout,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *EngineSQLiteTestSuite) TestDeposit_SlowNotifierDoesNotFailTheDeposit() {
	held := s.addLocker(1, kernel.SizeSmall, locker.Available)
	notifier := stalledNotifier{delay: 2 * time.Second, release: make(chan struct{})}
	defer close(notifier.release)

	handler := s.depositHandler(depositUoWs{s.factory}, notifier, 300*time.Millisecond)
	cmd, err := commands.NewDepositPackageCommand(s.location.ID(), "A-101", "small", "AWB900", "Delhivery")
	s.Require().NoError(err)

	started := time.Now()
	result, err := handler.Handle(s.ctx, cmd)

	s.Require().NoError(err)
	s.Less(time.Since(started), time.Second)
	s.False(result.NotificationSent)
	s.Equal(1, result.LockerNumber)
	s.Equal(locker.Occupied, s.lockerStatus(held.ID()))
	s.False(s.storedDelivery(result.DeliveryID).NotificationSent())
}

func (s *EngineSQLiteTestSuite) TestDeposit_CommitAfterDeadlineIsRetryableConflict() {
	held := s.addLocker(1, kernel.SizeSmall, locker.Available)

	handler := s.depositHandler(lateCommitUoWs{depositUoWs{s.factory}}, s.notifier, 200*time.Millisecond)
	cmd, err := commands.NewDepositPackageCommand(s.location.ID(), "A-101", "small", "AWB901", "Delhivery")
	s.Require().NoError(err)

	_, err = handler.Handle(s.ctx, cmd)

	s.Require().ErrorIs(err, errs.ErrConflict)
	s.Equal(commands.KindConflict, commands.ErrorKind(err))
	s.True(commands.IsRetryable(err))

	// The driver rolls the expired transaction back in the background.
	s.Eventually(func() bool {
		var n int64
		return s.db.Model(&deliveryrepo.DeliveryDTO{}).Count(&n).Error == nil && n == 0
	}, 2*time.Second, 20*time.Millisecond)
	s.Zero(s.countRows(&lockerlogrepo.HardwareSyncDTO{}, ""))
	s.Equal(locker.Available, s.lockerStatus(held.ID()))
}
