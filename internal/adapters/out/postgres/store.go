package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"parcellocker/internal/adapters/out/postgres/deliveryrepo"
	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/adapters/out/postgres/locationrepo"
	"parcellocker/internal/adapters/out/postgres/lockerlogrepo"
	"parcellocker/internal/adapters/out/postgres/lockerrepo"
	"parcellocker/internal/adapters/out/postgres/residentrepo"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HealthCheckTimeout bounds Store.Ping.
const HealthCheckTimeout = 2 * time.Second

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// StoreConfig describes how to reach the database and size its pool.
type StoreConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the SQLite file, or ":memory:".
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	LogLevel logger.LogLevel
}

func (c StoreConfig) dialector() (gorm.Dialector, error) {
	switch strings.ToLower(c.Driver) {
	case "", dialect.Postgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return gormpostgres.Open(fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
		)), nil
	case dialect.MySQL:
		return gormmysql.New(gormmysql.Config{DSNConfig: c.mysqlConfig()}), nil
	case dialect.SQLite:
		path := c.Path
		if path == "" {
			path = "parcellocker.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
}

// mysqlConfig runs every session at READ COMMITTED. Under the REPEATABLE READ
// default the snapshot taken before LockFlat would hide a resident committed
// by the transaction that held the lock.
func (c StoreConfig) mysqlConfig() *mysqldriver.Config {
	dsn := mysqldriver.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Host, c.Port)
	dsn.DBName = c.Name
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	// Conditional updates count matched rows, not changed rows.
	dsn.ClientFoundRows = true
	dsn.Params = map[string]string{"transaction_isolation": "'READ-COMMITTED'"}
	return dsn
}

// Store owns the connection pool.
type Store struct {
	DB *gorm.DB
}

// OpenStore connects, sizes the pool and checks the connection.
func OpenStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	d, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if level == 0 {
		level = logger.Warn
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dialectOrDefault(cfg.Driver), err)
	}

	store := &Store{DB: db}
	if err = store.configurePool(cfg); err != nil {
		return nil, err
	}
	if err = store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an already opened connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) configurePool(cfg StoreConfig) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}

	if dialect.Name(s.DB) == dialect.SQLite {
		// One writer at a time; extra connections only produce SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return nil
}

// Ping checks the connection within HealthCheckTimeout.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates every table the engine uses.
func (s *Store) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).AutoMigrate(Models()...)
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Models lists the persisted DTOs in dependency order.
func Models() []any {
	return []any{
		&locationrepo.LocationDTO{},
		&residentrepo.ResidentDTO{},
		&lockerrepo.LockerDTO{},
		&deliveryrepo.DeliveryDTO{},
		&lockerlogrepo.HardwareSyncDTO{},
		&lockerlogrepo.AccessAuditDTO{},
	}
}

func dialectOrDefault(driver string) string {
	if driver == "" {
		return dialect.Postgres
	}
	return strings.ToLower(driver)
}
