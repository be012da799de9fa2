package services

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
)

// EventRecorder counts domain events. *metrics.Metrics satisfies it.
type EventRecorder interface {
	RecordBusinessEvent(action, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordBusinessEvent(string, string) {}

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// base carries the dependencies every service shares.
type base struct {
	store  *repository.Store
	log    *zap.Logger
	events EventRecorder
	now    func() time.Time
}

func newBase(store *repository.Store, log *zap.Logger, events EventRecorder) base {
	if log == nil {
		log = zap.NewNop()
	}
	if events == nil {
		events = nopRecorder{}
	}
	return base{
		store:  store,
		log:    log,
		events: events,
		now:    utcNow(time.Now),
	}
}

// utcNow pins a time source to UTC. sqlite compares stored times as text,
// so every instant written or queried must share one zone.
func utcNow(now func() time.Time) func() time.Time {
	return func() time.Time {
		return now().UTC()
	}
}

// SetClock replaces the time source. Intended for tests.
func (b *base) SetClock(now func() time.Time) {
	b.now = utcNow(now)
}

func (b *base) record(action string, err error) {
	if err != nil {
		b.events.RecordBusinessEvent(action, outcomeFailure)
		return
	}
	b.events.RecordBusinessEvent(action, outcomeSuccess)
}

// Services bundles every domain service wired to the same store.
type Services struct {
	Auth          *AuthService
	Properties    *PropertyService
	Connections   *ConnectionService
	Tenants       *TenantService
	Payments      *PaymentService
	Maintenance   *MaintenanceService
	Reminders     *ReminderService
	Notifications *NotificationService
	Dashboards    *DashboardService
}

// New builds all services. drafter may be nil when no AI backend is configured.
func New(store *repository.Store, log *zap.Logger, events EventRecorder, drafter ReminderDrafter) *Services {
	return &Services{
		Auth:          NewAuthService(store, log, events),
		Properties:    NewPropertyService(store, log, events),
		Connections:   NewConnectionService(store, log, events),
		Tenants:       NewTenantService(store, log, events),
		Payments:      NewPaymentService(store, log, events),
		Maintenance:   NewMaintenanceService(store, log, events),
		Reminders:     NewReminderService(store, log, events, drafter),
		Notifications: NewNotificationService(store, log, events),
		Dashboards:    NewDashboardService(store, log, events),
	}
}

// SetClock replaces the time source of every service.
func (s *Services) SetClock(now func() time.Time) {
	s.Auth.SetClock(now)
	s.Properties.SetClock(now)
	s.Connections.SetClock(now)
	s.Tenants.SetClock(now)
	s.Payments.SetClock(now)
	s.Maintenance.SetClock(now)
	s.Reminders.SetClock(now)
	s.Notifications.SetClock(now)
	s.Dashboards.SetClock(now)
}
