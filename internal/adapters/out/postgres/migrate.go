package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/partnerrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables the repositories read and write.
// Production schemas are owned by the order and partner services; this lets the
// service run against an empty database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&partnerrepo.AvailabilityDTO{},
		&partnerrepo.ProfileDTO{},
	); err != nil {
		return fmt.Errorf("failed to migrate dispatch schema: %w", err)
	}
	return nil
}
