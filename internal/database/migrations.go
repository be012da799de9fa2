package database

import (
	"fmt"

	"github.com/yukikurage/property-management-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes creates the composite indexes the dashboards and cascades rely
// on. Single-column indexes are declared on the models themselves.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// Owner dashboard: pending payments per tenant
		{&models.Payment{}, "idx_payments_tenant_status", "tenant_email, status"},

		// Owner dashboard: most recent maintenance per property
		{&models.MaintenanceRequest{}, "idx_maintenance_property_created", "property_id, created_at"},

		// Upcoming reminders per tenant
		{&models.Reminder{}, "idx_reminders_tenant_due", "tenant_id, due_date"},

		// Property removal cascade
		{&models.ConnectionCode{}, "idx_connection_codes_property_unit", "property_id, unit"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", stmt.Schema.Table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
