package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/nutrition"
)

// Recipe is a catalog entry that plans are generated from. Category holds the
// meal slot the recipe is served in.
type Recipe struct {
	ID              uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Category        string         `gorm:"size:20;not null;index" json:"category"`
	ImageURL        string         `gorm:"size:255" json:"image_url"`
	Ingredients     datatypes.JSON `json:"ingredients"`
	Instructions    datatypes.JSON `json:"instructions"`
	Calories        float64        `json:"calories"`
	Protein         float64        `json:"protein"`
	Carbs           float64        `json:"carbs"`
	Fat             float64        `json:"fat"`
	Fiber           float64        `json:"fiber"`
	Cost            float64        `json:"cost"`
	Servings        int            `gorm:"default:1" json:"servings"`
	PrepTimeMinutes int            `json:"prep_time_minutes"`
	CreatedBy       *uuid.UUID     `gorm:"type:varchar(36)" json:"created_by,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientList decodes the ingredient names.
func (r *Recipe) IngredientList() []string {
	var out []string
	_ = json.Unmarshal(r.Ingredients, &out)
	return out
}

// Planned mirrors the recipe's nutrition and cost into a plan slot.
func (r *Recipe) Planned(mealID string) nutrition.PlannedMeal {
	return nutrition.PlannedMeal{
		ID:         mealID,
		RecipeName: r.Name,
		ImageURL:   r.ImageURL,
		Calories:   nutrition.Num(r.Calories),
		Protein:    nutrition.Num(r.Protein),
		Carbs:      nutrition.Num(r.Carbs),
		Fat:        nutrition.Num(r.Fat),
		Fiber:      nutrition.Num(r.Fiber),
		Cost:       nutrition.Num(r.Cost),
	}
}
