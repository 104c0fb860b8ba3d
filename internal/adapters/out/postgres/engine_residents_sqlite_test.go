package postgres_test

import (
	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/model/resident"
)

func (s *EngineSQLiteTestSuite) storedResident(id kernel.UUID) *resident.Resident {
	r, err := s.factory.Create().ResidentRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return r
}

func (s *EngineSQLiteTestSuite) updateResident(id kernel.UUID, flat, status string) (*resident.Resident, error) {
	cmd, err := commands.NewUpdateResidentCommand(id, flat, "Ravi Kumar", "9123456789", "ravi@example.com", status)
	s.Require().NoError(err)
	return s.update.Handle(s.ctx, cmd)
}

func (s *EngineSQLiteTestSuite) deactivateResident(id kernel.UUID) error {
	cmd, err := commands.NewDeactivateResidentCommand(id)
	s.Require().NoError(err)
	return s.retire.Handle(s.ctx, cmd)
}

func (s *EngineSQLiteTestSuite) TestUpdateResident_MoveToFreeFlat() {
	ravi := s.registerResident("A-102", "Ravi K", "9123456789", "")

	updated, err := s.updateResident(ravi, "C-303", "")

	s.Require().NoError(err)
	s.Equal("C-303", updated.FlatNumber())

	stored := s.storedResident(ravi)
	s.Equal("C-303", stored.FlatNumber())
	s.Equal("Ravi Kumar", stored.FullName())
	s.Equal("ravi@example.com", stored.Email())
	s.True(stored.IsActive())
}

func (s *EngineSQLiteTestSuite) TestUpdateResident_MoveIntoOccupiedFlatIsRejected() {
	ravi := s.registerResident("A-102", "Ravi K", "9123456789", "")

	_, err := s.updateResident(ravi, "A-101", "")

	s.Require().ErrorIs(err, commands.ErrFlatAlreadyOccupied)
	s.Equal("A-102", s.storedResident(ravi).FlatNumber())
}

func (s *EngineSQLiteTestSuite) TestDeactivateResident_FreesTheFlat() {
	ravi := s.registerResident("A-102", "Ravi K", "9123456789", "")

	s.Require().NoError(s.deactivateResident(ravi))
	s.Require().NoError(s.deactivateResident(ravi), "deactivating twice is a no-op")
	s.False(s.storedResident(ravi).IsActive())

	meera := s.registerResident("A-102", "Meera Iyer", "7012345678", "")
	s.True(s.storedResident(meera).IsActive())

	_, err := s.updateResident(ravi, "A-102", "active")
	s.Require().ErrorIs(err, commands.ErrFlatAlreadyOccupied, "reactivation cannot create a second active resident")
	s.False(s.storedResident(ravi).IsActive())
}

func (s *EngineSQLiteTestSuite) TestDeactivateResident_WaitsForPackages() {
	s.addLocker(1, kernel.SizeSmall, locker.Available)
	parcel, err := s.depositFor("A-101", "small")
	s.Require().NoError(err)

	asha, err := s.factory.Create().ResidentRepository().FindActiveByFlat(s.ctx, s.location.ID(), "A-101")
	s.Require().NoError(err)

	err = s.deactivateResident(asha.ID())
	s.Require().ErrorIs(err, commands.ErrResidentHasActiveDeliveries)
	s.True(s.storedResident(asha.ID()).IsActive())

	_, err = s.collectWith(parcel.OTP)
	s.Require().NoError(err)

	s.Require().NoError(s.deactivateResident(asha.ID()))
	s.False(s.storedResident(asha.ID()).IsActive())

	_, err = s.depositFor("A-101", "small")
	s.Require().ErrorIs(err, commands.ErrResidentNotFound)
}

func (s *EngineSQLiteTestSuite) TestDeactivateResident_Unknown() {
	err := s.deactivateResident(kernel.NewUUID())

	s.Require().ErrorIs(err, commands.ErrResidentNotFound)
	s.Equal(commands.KindResidentNotFound, commands.ErrorKind(err))
}
