package services

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db instance: %v", err)
	}
	// One connection: an in-memory sqlite database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Quip{},
		&models.Comment{},
		&models.QuipUp{},
		&models.CommentUp{},
		&models.Repost{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &user
}

func seedQuip(t *testing.T, db *gorm.DB, userID int, content string, createdAt time.Time) *models.Quip {
	t.Helper()
	quip := models.Quip{UserID: userID, Content: content, CreatedAt: createdAt}
	if err := db.Create(&quip).Error; err != nil {
		t.Fatalf("seed quip: %v", err)
	}
	return &quip
}

func assertKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, appErr.Kind, appErr)
	}
	return appErr
}
