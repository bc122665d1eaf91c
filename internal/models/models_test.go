package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/nutrition"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestUserDefaults(t *testing.T) {
	db := setupTestDB(t)
	user := &User{Email: "ana@example.com", Username: "ana", PasswordHash: "x"}

	require.NoError(t, db.Create(user).Error)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, []string{"user"}, user.Roles())
}

func TestWeeklyBudget(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		want     *float64
	}{
		{"number", `{"weeklyBudget": 700}`, ptr(700)},
		{"numeric string", `{"weeklyBudget": "₱1,050"}`, ptr(1050)},
		{"null", `{"weeklyBudget": null}`, nil},
		{"empty string", `{"weeklyBudget": ""}`, nil},
		{"missing", `{"currency": "PHP"}`, nil},
		{"corrupt", `not json`, nil},
		{"unset", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{BudgetSettings: datatypes.JSON(tt.settings)}
			assert.Equal(t, tt.want, p.WeeklyBudget())
		})
	}

	var nilProfile *UserProfile
	assert.Nil(t, nilProfile.WeeklyBudget())
}

func TestMealLogRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	entry := nutrition.MealLogEntry{
		ID:         "m1",
		MealSlot:   nutrition.Lunch,
		RecipeName: "Chicken Adobo",
		Status:     nutrition.StatusEaten,
		Calories:   nutrition.Text("650 kcal"),
		Cost:       nutrition.Num(85.5),
	}

	row := NewMealLog(userID, "2024-03-10", entry, time.Now())
	require.NoError(t, db.Create(row).Error)

	var stored MealLog
	require.NoError(t, db.First(&stored, "user_id = ? AND meal_id = ?", userID, "m1").Error)

	got := stored.Entry()
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, nutrition.Lunch, got.MealSlot)
	assert.Equal(t, nutrition.StatusEaten, got.Status)
	assert.Equal(t, "650 kcal", got.Calories.Raw())
	assert.Equal(t, 650.0, got.Calories.Float())
	assert.Equal(t, 85.5, got.Cost.Float())
}

func TestMealPlanDays(t *testing.T) {
	plan := &MealPlan{UserID: uuid.New()}
	days := []nutrition.PlanDay{{
		Date:  "2024-03-10",
		Meals: map[nutrition.MealSlot]nutrition.PlannedMeal{nutrition.Breakfast: {ID: "b", RecipeName: "Tapsilog", Cost: nutrition.Num(90)}},
	}}

	require.NoError(t, plan.SetPlanDays(days))
	got := plan.PlanDays()

	require.Len(t, got, 1)
	assert.Equal(t, "Tapsilog", got[0].Meals[nutrition.Breakfast].RecipeName)
	assert.Equal(t, 90.0, got[0].Meals[nutrition.Breakfast].Cost.Float())

	plan.Days = datatypes.JSON(`{broken`)
	assert.Nil(t, plan.PlanDays())
}

func TestRecipePlanned(t *testing.T) {
	r := &Recipe{Name: "Sinigang", Calories: 420, Protein: 30, Cost: 120, Ingredients: datatypes.JSON(`["pork","tamarind"]`)}

	meal := r.Planned("meal-1")

	assert.Equal(t, "meal-1", meal.ID)
	assert.Equal(t, "Sinigang", meal.RecipeName)
	assert.Equal(t, 420.0, meal.Calories.Float())
	assert.Equal(t, 120.0, meal.Cost.Float())
	assert.Equal(t, []string{"pork", "tamarind"}, r.IngredientList())
}

func ptr(f float64) *float64 {
	return &f
}
