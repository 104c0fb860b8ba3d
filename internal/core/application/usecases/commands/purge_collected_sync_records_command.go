package commands

import (
	"errors"

	"parcellocker/internal/pkg/guard"
)

var ErrPurgeCollectedSyncRecordsCommandIsNotConstructed = errors.New(
	"PurgeCollectedSyncRecordsCommand must be created via NewPurgeCollectedSyncRecordsCommand constructor",
)

// PurgeCollectedSyncRecordsCommand removes the sync rows the door controller
// has marked collected.
type PurgeCollectedSyncRecordsCommand struct {
	guard guard.ConstructorGuard
}

func NewPurgeCollectedSyncRecordsCommand() PurgeCollectedSyncRecordsCommand {
	return PurgeCollectedSyncRecordsCommand{guard: guard.NewConstructorGuard()}
}

func (c PurgeCollectedSyncRecordsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeCollectedSyncRecordsCommandIsNotConstructed)
}
