package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/models"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.University{},
		&models.ShortlistEntry{},
		&models.Task{},
		&models.ChatMessage{},
	))
	return db
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, FullName: "Test User", HashedPassword: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestUniversity(t *testing.T, db *gorm.DB, name string, minGPA float64) models.University {
	t.Helper()

	university := models.University{Name: name, Country: "United States", MinGPA: &minGPA}
	require.NoError(t, db.Create(&university).Error)
	return university
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
