package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Store bundles the repositories of one backing database together with its
// connection lifecycle.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Backend  string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open picks a backend from the scheme of databaseURL. SQL backends log
// failed and slow queries to log.
//
//	mongodb://, mongodb+srv://   MongoDB, using database dbName
//	postgres://, postgresql://   PostgreSQL through GORM
//	memory://                    in-process maps, lost on exit
//	anything else                SQLite through GORM (an optional sqlite:// prefix is stripped)
func Open(ctx context.Context, databaseURL, dbName string, log logrus.FieldLogger) (*Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return OpenMongoStore(ctx, databaseURL, dbName)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db, err := OpenPostgres(databaseURL, log)
		if err != nil {
			return nil, err
		}
		return NewGORMStore(db)
	case strings.HasPrefix(databaseURL, "memory://"):
		return NewMemoryStore(), nil
	default:
		db, err := OpenSQLite(strings.TrimPrefix(databaseURL, "sqlite://"), log)
		if err != nil {
			return nil, err
		}
		return NewGORMStore(db)
	}
}

// Ping checks that the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	if err := s.ping(ctx); err != nil {
		return fmt.Errorf("%s ping: %w", s.Backend, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
