package database

import (
	"etik/internal/checkin"
	"etik/internal/operators"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&operators.Operator{},
		&checkin.ScanLog{},
	); err != nil {
		return err
	}

	return MigrateIndexes(db)
}
