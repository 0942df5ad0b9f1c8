package database

import (
	"gorm.io/gorm"
)

// MigrateIndexes adds indexes gorm tags cannot express
func MigrateIndexes(db *gorm.DB) error {
	// Repeat detection looks up recent successful lookups of one code
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_scan_logs_repeat
		ON scan_logs (event_id, e_code, mode, created_at DESC)
		WHERE action = 'lookup' AND outcome IN ('ok', 'no_eligible');
	`).Error
	if err != nil {
		return err
	}

	// Station history page
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_scan_logs_station_created
		ON scan_logs (station_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
