package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/models"
)

// OpenSQLite opens a SQLite database through GORM. dsn is passed to the
// driver unchanged, e.g. "file:storefront.db" or "file::memory:".
func OpenSQLite(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	return openGORM(sqlite.Open(dsn), log)
}

// OpenPostgres opens a PostgreSQL database through GORM.
func OpenPostgres(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	return openGORM(postgres.Open(dsn), log)
}

// gormLogWriter hands GORM's log lines to logrus. GORM only writes failed
// and slow queries at the configured level.
type gormLogWriter struct {
	log logrus.FieldLogger
}

func (w gormLogWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}

func newGORMLogger(log logrus.FieldLogger) logger.Interface {
	// lookups of unknown emails are normal control flow, not errors
	return logger.New(gormLogWriter{log: log.WithField("component", "gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func openGORM(dialector gorm.Dialector, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		// Maps driver unique violations to gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         newGORMLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewGORMStore migrates the schema and wraps db in a Store.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return &Store{
		Users:    NewGORMUserRepository(db),
		Products: NewGORMProductRepository(db),
		Backend:  db.Dialector.Name(),
		ping:     sqlDB.PingContext,
		close:    func(context.Context) error { return sqlDB.Close() },
	}, nil
}
