package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"github.com/yukikurage/property-management-api/internal/testutil"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPaymentRepository_DeleteByTenantEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "payments" WHERE tenant_email = $1`)).
		WithArgs("tom@example.com").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteByTenantEmail("tom@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_EmptyEmailListSkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(db)

	payments, err := repo.ListByTenantEmails(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_CountByProperty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewTenantRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "tenants" WHERE property_id = $1`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByProperty(7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionCodeRepository_DeleteByPropertyError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewConnectionCodeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "connection_codes" WHERE property_id = $1`)).
		WithArgs(uint64(9)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteByProperty(9)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderRepository_ListUpcoming(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewReminderRepository(db)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	for _, r := range []models.Reminder{
		{TenantID: 1, TenantEmail: "a@example.com", Message: "later", DueDate: at(72 * time.Hour)},
		{TenantID: 1, TenantEmail: "a@example.com", Message: "past", DueDate: at(-time.Hour)},
		{TenantID: 2, TenantEmail: "b@example.com", Message: "soon", DueDate: at(time.Hour)},
		{TenantID: 2, TenantEmail: "b@example.com", Message: "undated"},
		{TenantID: 3, TenantEmail: "c@example.com", Message: "other tenant", DueDate: at(time.Hour)},
	} {
		r := r
		r.Type = "general"
		r.Status = models.ReminderStatusSent
		r.SentAt = now
		require.NoError(t, repo.Create(&r))
	}

	upcoming, err := repo.ListUpcoming([]uint64{1, 2}, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "soon", upcoming[0].Message)
	assert.Equal(t, "later", upcoming[1].Message)

	empty, err := repo.ListUpcoming(nil, now)
	require.NoError(t, err)
	assert.Empty(t, empty)

	removed, err := repo.DeleteByTenantEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestReminderRepository_ListUpcomingAcrossZones(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewReminderRepository(db)

	due := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&models.Reminder{
		TenantID:    1,
		TenantEmail: "a@example.com",
		Message:     "due at five",
		Type:        "general",
		Status:      models.ReminderStatusSent,
		SentAt:      due.Add(-time.Hour),
		DueDate:     &due,
	}))

	// 12:00 in Tokyo is 03:00 UTC, two hours before the due date.
	tokyo := time.FixedZone("JST", 9*60*60)
	upcoming, err := repo.ListUpcoming([]uint64{1}, time.Date(2025, 3, 10, 12, 0, 0, 0, tokyo))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "due at five", upcoming[0].Message)

	// 15:00 in Tokyo is 06:00 UTC, one hour after it.
	upcoming, err = repo.ListUpcoming([]uint64{1}, time.Date(2025, 3, 10, 15, 0, 0, 0, tokyo))
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestTenantRepository_UnitUniqueness(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTenantRepository(db)

	first := &models.Tenant{Email: "a@example.com", PropertyID: 1, Unit: "1A", RentAmount: decimal.NewFromInt(500), RentStatus: models.RentStatusPending}
	require.NoError(t, repo.Create(first))

	second := &models.Tenant{Email: "b@example.com", PropertyID: 1, Unit: "1A", RentAmount: decimal.NewFromInt(500), RentStatus: models.RentStatusPending}
	assert.Error(t, repo.Create(second))

	found, err := repo.FindByPropertyUnit(1, "1A")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByPropertyUnit(1, "1B")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_AtomicRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Create(&models.User{
			Name:         "Olivia",
			Email:        "olivia@example.com",
			PasswordHash: "hash",
			UserType:     models.UserTypeOwner,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Repos(ctx).Users.FindByEmail("olivia@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
