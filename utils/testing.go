package utils

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CreateTempDB creates a per-test in-memory database with the full schema
// migrated. Foreign keys are switched on explicitly so that the cascade
// and SET NULL rules behave like the production engine. The database is
// named after the test so parallel tests don't share state.
func CreateTempDB(t *testing.T) (*gorm.DB, func()) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("fail to open temp db: %v", err)
	}

	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate temp db: %v", err)
	}

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup
}
