package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/nutrition"
)

// MealPlan is a user's active multi-day plan and its day pointer.
type MealPlan struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Days         datatypes.JSON `gorm:"not null" json:"days"`
	CurrentIndex int            `gorm:"not null;default:0" json:"current_index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlanDays decodes the stored days. A corrupt blob reads as an empty plan.
func (p *MealPlan) PlanDays() []nutrition.PlanDay {
	var days []nutrition.PlanDay
	if len(p.Days) == 0 {
		return days
	}
	if err := json.Unmarshal(p.Days, &days); err != nil {
		return nil
	}
	return days
}

// SetPlanDays encodes days into the plan.
func (p *MealPlan) SetPlanDays(days []nutrition.PlanDay) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	p.Days = datatypes.JSON(raw)
	return nil
}
