package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Repositories groups every repository bound to the same connection or
// transaction.
type Repositories struct {
	Users           UserRepository
	Properties      PropertyRepository
	Tenants         TenantRepository
	Payments        PaymentRepository
	Maintenance     MaintenanceRepository
	Reminders       ReminderRepository
	ConnectionCodes ConnectionCodeRepository
	Notifications   NotificationRepository
}

// NewRepositories binds all repositories to db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(db),
		Properties:      NewPropertyRepository(db),
		Tenants:         NewTenantRepository(db),
		Payments:        NewPaymentRepository(db),
		Maintenance:     NewMaintenanceRepository(db),
		Reminders:       NewReminderRepository(db),
		ConnectionCodes: NewConnectionCodeRepository(db),
		Notifications:   NewNotificationRepository(db),
	}
}

// Store owns the database handle for the lifetime of the process and hands
// out repositories to services.
//
// Compound mutations go through Atomic: it holds a process-wide write lock
// for the duration of a database transaction, so read-modify-write sequences
// such as occupancy counters or code consumption never interleave.
type Store struct {
	db      *gorm.DB
	writeMu sync.Mutex
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Repos returns repositories for plain reads and single-row writes.
func (s *Store) Repos(ctx context.Context) *Repositories {
	return NewRepositories(s.db.WithContext(ctx))
}

// Atomic runs fn inside a transaction while holding the write lock. Any
// error returned by fn rolls the transaction back.
func (s *Store) Atomic(ctx context.Context, fn func(r *Repositories) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
