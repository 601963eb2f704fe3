package database

import (
	"fmt"
	"testing"

	"spendtrack/internal/config"
	"spendtrack/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashed_password",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"expenses",
		"budgets",
		"audit_logs",
		"blacklisted_tokens",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
