package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
)

const TestPassword = "password123"

// CreateTestUser inserts a user with an empty profile. The password is
// TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := db.Create(&models.UserProfile{UserID: user.ID}).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a catalog entry for slot.
func CreateTestRecipe(t *testing.T, db *gorm.DB, name string, slot nutrition.MealSlot, calories, cost float64) *models.Recipe {
	t.Helper()
	r := &models.Recipe{Name: name, Category: string(slot), Calories: calories, Cost: cost, Servings: 1}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return r
}

// LogEntry inserts a meal log row directly.
func LogEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, date string, entry nutrition.MealLogEntry) {
	t.Helper()
	if err := db.Create(models.NewMealLog(userID, date, entry, time.Now())).Error; err != nil {
		t.Fatalf("failed to create meal log: %v", err)
	}
}

// FixedClock returns a clock frozen at the given instant.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
