package database

import (
	"log"

	"gorm.io/gorm"
)

// cleanupDuplicateDailyPrices removes duplicate (id_product, date) rows
// before the composite unique index is added. Databases written by
// versions without the constraint can otherwise fail AutoMigrate.
func cleanupDuplicateDailyPrices(db *gorm.DB) error {
	if !db.Migrator().HasTable("daily_prices") {
		return nil
	}

	// Keep the most recently written row of each duplicate group.
	result := db.Exec(`
		DELETE FROM daily_prices
		WHERE id NOT IN (
			SELECT MAX(id)
			FROM daily_prices
			GROUP BY id_product, date
		)
	`)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d duplicate daily_prices entries", result.RowsAffected)
	}

	return nil
}
