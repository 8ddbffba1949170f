package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/golangdaddy/roadrush/pkg/config"
)

// ErrUnknownStorage is returned for an unsupported storage.type
var ErrUnknownStorage = errors.New("unknown storage type")

// Store persists telemetry records
type Store struct {
	db *gorm.DB
}

// Open connects to the configured backend and migrates the schema
func Open(cfg config.StorageConfig) (*Store, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "", "sqlite":
		db, err = openSQLite(cfg.SQLite.Path)
	case "postgres":
		db, err = openPostgres(cfg.Postgres)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Type, err)
	}
	return NewStore(db)
}

// NewStore wraps an existing connection and migrates the schema
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&SessionLog{}, &LocationLog{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

func openSQLite(path string) (*gorm.DB, error) {
	memory := path == "" || path == ":memory:"
	if memory {
		path = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Every connection to an in-memory database is a separate database
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func openPostgres(cfg config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=%s`,
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	return db, nil
}

// AddSession stores a session record
func (s *Store) AddSession(ctx context.Context, l *SessionLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

// AddLocation stores a location record
func (s *Store) AddLocation(ctx context.Context, l *LocationLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

// Sessions returns up to limit session records, newest first
func (s *Store) Sessions(ctx context.Context, limit int) ([]SessionLog, error) {
	var out []SessionLog
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&out).Error
	return out, err
}

// Locations returns up to limit location records, newest first
func (s *Store) Locations(ctx context.Context, limit int) ([]LocationLog, error) {
	var out []LocationLog
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&out).Error
	return out, err
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
