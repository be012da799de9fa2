// Package testutil builds throwaway databases and services for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/property-management-api/internal/database"
	"github.com/yukikurage/property-management-api/internal/repository"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database that is closed when the
// test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: database.UTCNow,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// Clock is a settable time source.
type Clock struct {
	Current time.Time
}

// NewClock starts a clock at a fixed UTC instant.
func NewClock() *Clock {
	return &Clock{Current: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	return c.Current
}

func (c *Clock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

// Env is a fully wired service layer on a fresh database.
type Env struct {
	DB       *gorm.DB
	Store    *repository.Store
	Services *services.Services
	Clock    *Clock
}

// NewEnv wires every service to a fresh database and a fake clock.
func NewEnv(t *testing.T, drafter services.ReminderDrafter) *Env {
	t.Helper()

	db := NewDB(t)
	store := repository.NewStore(db)
	clock := NewClock()

	svc := services.New(store, zap.NewNop(), nil, drafter)
	svc.SetClock(clock.Now)

	return &Env{
		DB:       db,
		Store:    store,
		Services: svc,
		Clock:    clock,
	}
}
