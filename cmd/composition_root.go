package cmd

import (
	"log/slog"
	"time"

	httpadapter "parcellocker/internal/adapters/in/http"
	"parcellocker/internal/adapters/out/notify"
	"parcellocker/internal/adapters/out/postgres"
	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/application/usecases/queries"
	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/core/ports"
	"parcellocker/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg        Config
	store      *postgres.Store
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, store *postgres.Store, logger *slog.Logger) CompositionRoot {
	var notifier ports.Notifier
	if cfg.SMTPEnabled() {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			Location: cfg.Timezone,
		}, logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	return CompositionRoot{
		cfg:        cfg,
		store:      store,
		uowFactory: postgres.NewGormUnitOfWorkFactory(store.DB),
		notifier:   notifier,
		clock:      ports.ClockFunc(time.Now),
		logger:     logger,
	}
}

// StoreConfig maps the database settings onto the store opener.
func (c Config) StoreConfig() postgres.StoreConfig {
	return postgres.StoreConfig{
		Driver:          c.DBDriver,
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		Name:            c.DBName,
		SSLMode:         c.DBSslMode,
		Path:            c.DBPath,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		LogLevel:        logger.Warn,
	}
}

func (c *CompositionRoot) CreateDepositPackageCommandHandler() commands.DepositPackageCommandHandler {
	var f commands.DepositUoWFactory = FuncDepositUoWFactory(func() commands.DepositUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDepositPackageCommandHandler(
		f, services.NewOTPGenerator(c.cfg.OTPValidity), c.notifier, c.clock, c.cfg.TxTimeout, c.logger,
	)
}

func (c *CompositionRoot) CreateCollectPackageCommandHandler() commands.CollectPackageCommandHandler {
	var f commands.CollectUoWFactory = FuncCollectUoWFactory(func() commands.CollectUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCollectPackageCommandHandler(
		f, services.NewOTPVerifier(c.cfg.MaxOTPAttempts), c.notifier, c.clock, c.cfg.TxTimeout, c.logger,
	)
}

func (c *CompositionRoot) CreateRegisterResidentCommandHandler() commands.RegisterResidentCommandHandler {
	var f commands.ResidentUoWFactory = FuncResidentUoWFactory(func() commands.ResidentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterResidentCommandHandler(f, c.cfg.TxTimeout, c.logger)
}

func (c *CompositionRoot) CreateUpdateResidentCommandHandler() commands.UpdateResidentCommandHandler {
	var f commands.ResidentUoWFactory = FuncResidentUoWFactory(func() commands.ResidentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateResidentCommandHandler(f, c.cfg.TxTimeout, c.logger)
}

func (c *CompositionRoot) CreateDeactivateResidentCommandHandler() commands.DeactivateResidentCommandHandler {
	var f commands.ResidentUoWFactory = FuncResidentUoWFactory(func() commands.ResidentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateResidentCommandHandler(f, c.cfg.TxTimeout, c.logger)
}

func (c *CompositionRoot) CreatePurgeCollectedSyncRecordsCommandHandler() commands.PurgeCollectedSyncRecordsCommandHandler {
	var f commands.SyncLogUoWFactory = FuncSyncLogUoWFactory(func() commands.SyncLogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeCollectedSyncRecordsCommandHandler(f, c.cfg.TxTimeout, c.logger)
}

func (c *CompositionRoot) CreateGetLockerAvailabilityQueryHandler() queries.GetLockerAvailabilityQueryHandler {
	return queries.NewGetLockerAvailabilityQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetActiveFlatsQueryHandler() queries.GetActiveFlatsQueryHandler {
	return queries.NewGetActiveFlatsQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetPendingHardwareCommandsQueryHandler() queries.GetPendingHardwareCommandsQueryHandler {
	return queries.NewGetPendingHardwareCommandsQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetResidentsQueryHandler() queries.GetResidentsQueryHandler {
	return queries.NewGetResidentsQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetResidentByFlatQueryHandler() queries.GetResidentByFlatQueryHandler {
	return queries.NewGetResidentByFlatQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetTowersQueryHandler() queries.GetTowersQueryHandler {
	return queries.NewGetTowersQueryHandler(c.db())
}

func (c *CompositionRoot) CreateGetFlatsQueryHandler() queries.GetFlatsQueryHandler {
	return queries.NewGetFlatsQueryHandler(c.db())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewSyncCleanupJob(c.CreatePurgeCollectedSyncRecordsCommandHandler(), c.cfg.CleanupSchedule, time.Minute, c.logger),
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	var availability *cache.Cache
	if c.cfg.CacheTTL > 0 {
		availability = httpadapter.NewAvailabilityCache(c.cfg.CacheTTL)
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		Deposit:            c.CreateDepositPackageCommandHandler(),
		Collect:            c.CreateCollectPackageCommandHandler(),
		RegisterResident:   c.CreateRegisterResidentCommandHandler(),
		UpdateResident:     c.CreateUpdateResidentCommandHandler(),
		DeactivateResident: c.CreateDeactivateResidentCommandHandler(),
		Residents:          c.CreateGetResidentsQueryHandler(),
		ResidentByFlat:     c.CreateGetResidentByFlatQueryHandler(),
		Towers:             c.CreateGetTowersQueryHandler(),
		Flats:              c.CreateGetFlatsQueryHandler(),
		Availability:       c.CreateGetLockerAvailabilityQueryHandler(),
		ActiveFlats:        c.CreateGetActiveFlatsQueryHandler(),
		HardwareCommands:   c.CreateGetPendingHardwareCommandsQueryHandler(),
		Health:             c.store,
	}, availability, c.logger)

	return httpadapter.NewRouter(server, availability, httpadapter.RouterConfig{
		RateLimit: c.cfg.RateLimit,
		Burst:     c.cfg.RateBurst,
		CacheTTL:  c.cfg.CacheTTL,
	})
}

func (c *CompositionRoot) db() *gorm.DB {
	return c.store.DB
}

type FuncDepositUoWFactory func() commands.DepositUoW

func (f FuncDepositUoWFactory) Create() commands.DepositUoW {
	return f()
}

type FuncCollectUoWFactory func() commands.CollectUoW

func (f FuncCollectUoWFactory) Create() commands.CollectUoW {
	return f()
}

type FuncResidentUoWFactory func() commands.ResidentUoW

func (f FuncResidentUoWFactory) Create() commands.ResidentUoW {
	return f()
}

type FuncSyncLogUoWFactory func() commands.SyncLogUoW

func (f FuncSyncLogUoWFactory) Create() commands.SyncLogUoW {
	return f()
}
