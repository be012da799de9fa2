package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidPriority            = errors.New("priority must be low, medium or high")
	ErrInvalidMaintenanceStatus   = errors.New("status must be pending, in_progress or completed")
	ErrMaintenanceRequestNotFound = errors.New("maintenance request not found")
)

const (
	notificationTypeMaintenance = "maintenance"
	relatedTypeMaintenance      = "maintenance_request"
)

// MaintenanceService handles the maintenance request lifecycle.
type MaintenanceService struct {
	base
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(store *repository.Store, log *zap.Logger, events EventRecorder) *MaintenanceService {
	return &MaintenanceService{base: newBase(store, log, events)}
}

// SubmitMaintenanceInput is a tenant's request for repairs.
type SubmitMaintenanceInput struct {
	TenantEmail string
	Title       string
	Description string
	Priority    models.MaintenancePriority
}

// SubmitRequest files a request against the tenant's property and notifies
// the property owner.
func (s *MaintenanceService) SubmitRequest(ctx context.Context, input SubmitMaintenanceInput) (request *models.MaintenanceRequest, err error) {
	defer func() { s.record("submit_maintenance", err) }()

	email := strings.TrimSpace(input.TenantEmail)
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if email == "" || title == "" || description == "" {
		return nil, ErrMissingFields
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		tenant, err := findTenantByEmail(r, email)
		if err != nil {
			return err
		}

		request = &models.MaintenanceRequest{
			TenantEmail: email,
			TenantID:    tenant.ID,
			PropertyID:  tenant.PropertyID,
			Title:       title,
			Description: description,
			Priority:    priority,
			Status:      models.MaintenanceStatusPending,
		}
		if err := r.Maintenance.Create(request); err != nil {
			return fmt.Errorf("failed to create maintenance request: %w", err)
		}

		property, err := r.Properties.FindByID(tenant.PropertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("maintenance request filed for missing property",
					zap.Uint64("property_id", tenant.PropertyID))
				return nil
			}
			return fmt.Errorf("failed to find property: %w", err)
		}

		tenantName := tenant.Name
		if tenantName == "" {
			tenantName = email
		}
		notification := &models.Notification{
			RecipientEmail: property.OwnerEmail,
			Audience:       models.AudienceOwner,
			Type:           notificationTypeMaintenance,
			Title:          "New Maintenance Request",
			Message:        fmt.Sprintf("%s submitted a maintenance request: %q", tenantName, title),
			Priority:       string(priority),
			RelatedID:      request.ID,
			RelatedType:    relatedTypeMaintenance,
		}
		if err := r.Notifications.Create(notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("maintenance request submitted",
		zap.Uint64("request_id", request.ID),
		zap.Uint64("property_id", request.PropertyID),
		zap.String("priority", string(request.Priority)),
	)
	return request, nil
}

// UpdateMaintenanceInput changes the status of a request and optionally
// records the owner's response.
type UpdateMaintenanceInput struct {
	RequestID uint64
	Status    models.MaintenanceStatus
	Response  *string
}

// UpdateRequest applies a status change. CompletedAt is stamped the first
// time the request is completed.
func (s *MaintenanceService) UpdateRequest(ctx context.Context, input UpdateMaintenanceInput) (request *models.MaintenanceRequest, err error) {
	defer func() { s.record("update_maintenance", err) }()

	if input.RequestID == 0 || input.Status == "" {
		return nil, ErrMissingFields
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidMaintenanceStatus
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		found, err := r.Maintenance.FindByID(input.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMaintenanceRequestNotFound
			}
			return fmt.Errorf("failed to find maintenance request: %w", err)
		}

		previous := found.Status
		found.SetStatus(input.Status, s.now())
		if input.Response != nil {
			found.Response = strings.TrimSpace(*input.Response)
		}
		if err := r.Maintenance.Update(found); err != nil {
			return fmt.Errorf("failed to update maintenance request: %w", err)
		}

		s.log.Info("maintenance status changed",
			zap.Uint64("request_id", found.ID),
			zap.String("from", string(previous)),
			zap.String("to", string(found.Status)),
		)
		request = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// MaintenanceView is a request enriched with its property and tenant.
// Either may be nil when the referenced row is gone.
type MaintenanceView struct {
	Request  models.MaintenanceRequest
	Property *models.Property
	Tenant   *models.Tenant
}

// ListForOwner returns requests filed against the owner's properties.
func (s *MaintenanceService) ListForOwner(ctx context.Context, ownerEmail string) ([]MaintenanceView, error) {
	repos := s.store.Repos(ctx)

	properties, err := repos.Properties.ListByOwnerEmail(strings.TrimSpace(ownerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	ids := propertyIDs(properties)

	requests, err := repos.Maintenance.ListByPropertyIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	tenants, err := repos.Tenants.ListByPropertyIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return enrichMaintenance(requests, indexProperties(properties), indexTenants(tenants)), nil
}

// ListForTenant returns the tenant's own requests.
func (s *MaintenanceService) ListForTenant(ctx context.Context, tenantEmail string) ([]MaintenanceView, error) {
	repos := s.store.Repos(ctx)
	email := strings.TrimSpace(tenantEmail)

	requests, err := repos.Maintenance.ListByTenantEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}

	properties := make(map[uint64]*models.Property)
	tenants := make(map[uint64]*models.Tenant)
	for _, request := range requests {
		if _, ok := properties[request.PropertyID]; !ok {
			property, err := repos.Properties.FindByID(request.PropertyID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find property: %w", err)
			}
			properties[request.PropertyID] = property
		}
		if _, ok := tenants[request.TenantID]; !ok {
			tenant, err := repos.Tenants.FindByID(request.TenantID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find tenant: %w", err)
			}
			tenants[request.TenantID] = tenant
		}
	}

	return enrichMaintenance(requests, properties, tenants), nil
}

func enrichMaintenance(requests []models.MaintenanceRequest, properties map[uint64]*models.Property, tenants map[uint64]*models.Tenant) []MaintenanceView {
	views := make([]MaintenanceView, len(requests))
	for i, request := range requests {
		views[i] = MaintenanceView{
			Request:  request,
			Property: properties[request.PropertyID],
			Tenant:   tenants[request.TenantID],
		}
	}
	return views
}

func indexTenants(tenants []models.Tenant) map[uint64]*models.Tenant {
	byID := make(map[uint64]*models.Tenant, len(tenants))
	for i := range tenants {
		byID[tenants[i].ID] = &tenants[i]
	}
	return byID
}
