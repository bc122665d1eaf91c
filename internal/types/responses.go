package types

import (
	"github.com/google/uuid"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
)

// UserSummary is the public view of an account
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token     string      `json:"token"`
	User      UserSummary `json:"user"`
	Message   string      `json:"message"`
	IsNewUser bool        `json:"isNewUser"`
}

// TodayPlan is the plan day currently served to the user
type TodayPlan struct {
	PlanID       uuid.UUID                `json:"planId"`
	CurrentIndex int                      `json:"currentIndex"`
	TotalDays    int                      `json:"totalDays"`
	Date         string                   `json:"date,omitempty"`
	Meals        []nutrition.MealLogEntry `json:"meals"`
	Complete     bool                     `json:"complete"`
	Exhausted    bool                     `json:"exhausted"`
}

// AdvanceResponse reports the plan state after an advance attempt
type AdvanceResponse struct {
	Advanced bool      `json:"advanced"`
	Plan     TodayPlan `json:"plan"`
}

// LogMealResponse is returned after a meal disposition is recorded
type LogMealResponse struct {
	Entry   nutrition.MealLogEntry `json:"entry"`
	Summary *models.DailySummary   `json:"summary"`
	Plan    *AdvanceResponse       `json:"plan,omitempty"`
}

// DashboardResponse backs the home screen
type DashboardResponse struct {
	Profile      *ProfileResponse         `json:"profile"`
	LatestBMI    *models.BMIRecord        `json:"latestBmi"`
	Today        *TodayPlan               `json:"today"`
	MealsToday   []nutrition.MealLogEntry `json:"mealsToday"`
	TodaySummary *models.DailySummary     `json:"todaySummary"`
	QuickStats   nutrition.QuickStats     `json:"quickStats"`
	Metrics      nutrition.Metrics        `json:"metrics"`
}

// DetectionResponse reports the recognized ingredients for one capture.
// Ingredients is empty, never an error, when nothing was recognized.
type DetectionResponse struct {
	Category    string               `json:"category"`
	Ingredients []DetectedIngredient `json:"ingredients"`
	ImageURL    string               `json:"imageUrl,omitempty"`
}

// DetectedIngredient is one recognized ingredient with its best confidence
type DetectedIngredient struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}
