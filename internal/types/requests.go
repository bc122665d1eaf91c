package types

import (
	"github.com/nutrilife/backend/internal/nutrition"
)

// SignupRequest represents the request body for account creation
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest accepts either the email or the username as the identifier
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LogMealRequest records the disposition of one served meal. Date defaults
// to today in the server's timezone.
type LogMealRequest struct {
	Date         string              `json:"date"`
	MealID       string              `json:"mealId" binding:"required"`
	MealSlot     string              `json:"mealSlot" binding:"required"`
	RecipeName   string              `json:"recipeName"`
	Status       string              `json:"status" binding:"required"`
	LoggedAtTime string              `json:"loggedAtTime"`
	Calories     nutrition.Magnitude `json:"calories"`
	Protein      nutrition.Magnitude `json:"protein"`
	Carbs        nutrition.Magnitude `json:"carbs"`
	Fat          nutrition.Magnitude `json:"fat"`
	Fiber        nutrition.Magnitude `json:"fiber"`
	Cost         nutrition.Magnitude `json:"cost"`
}

// SavePlanRequest replaces the active plan
type SavePlanRequest struct {
	Days []nutrition.PlanDay `json:"days" binding:"required"`
}

// GeneratePlanRequest builds a plan from the recipe catalog
type GeneratePlanRequest struct {
	Days      int    `json:"days"`
	StartDate string `json:"startDate"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required"`
	ImageURL        string   `json:"image_url"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	Calories        float64  `json:"calories"`
	Protein         float64  `json:"protein"`
	Carbs           float64  `json:"carbs"`
	Fat             float64  `json:"fat"`
	Fiber           float64  `json:"fiber"`
	Cost            float64  `json:"cost"`
	Servings        int      `json:"servings"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
}
