package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest replaces the user's profile attributes. Omitted fields
// are cleared, matching a full PUT.
type UpdateProfileRequest struct {
	FullName           string          `json:"full_name"`
	Age                *int            `json:"age"`
	Gender             string          `json:"gender"`
	HeightCm           *float64        `json:"height_cm"`
	CurrentWeightKg    *float64        `json:"current_weight_kg"`
	TargetWeightKg     *float64        `json:"target_weight_kg"`
	ActivityLevel      string          `json:"activity_level"`
	HealthGoals        string          `json:"health_goals"`
	DietaryPreferences json.RawMessage `json:"dietary_preferences"`
	BudgetSettings     json.RawMessage `json:"budget_settings"`
}

// ProfileResponse is the joined view of a user and their profile
type ProfileResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Email              string          `json:"email"`
	Username           string          `json:"username"`
	FullName           string          `json:"full_name"`
	Age                *int            `json:"age"`
	Gender             string          `json:"gender"`
	HeightCm           *float64        `json:"height_cm"`
	CurrentWeightKg    *float64        `json:"current_weight_kg"`
	TargetWeightKg     *float64        `json:"target_weight_kg"`
	ActivityLevel      string          `json:"activity_level"`
	HealthGoals        string          `json:"health_goals"`
	DietaryPreferences json.RawMessage `json:"dietary_preferences"`
	BudgetSettings     json.RawMessage `json:"budget_settings"`
	WeeklyBudget       *float64        `json:"weekly_budget"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
