package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables and indexes owned by the engine.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Offer{},
		&PendingRedemption{},
		&Redemption{},
		&AuditLog{},
	)
}
