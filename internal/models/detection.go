package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetectionRecord audits one ingredient-recognition request.
type DetectionRecord struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Category   string    `gorm:"size:50;not null" json:"category"`
	Provider   string    `gorm:"size:20;not null" json:"provider"`
	Detected   bool      `json:"detected"`
	Confidence float64   `json:"confidence"`
	ImageKey   string    `gorm:"size:255" json:"image_key,omitempty"`
	Failure    string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (d *DetectionRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// All lists every model managed by auto-migration.
func All() []any {
	return []any{
		&User{},
		&UserProfile{},
		&BMIRecord{},
		&Recipe{},
		&MealPlan{},
		&MealLog{},
		&DailySummary{},
		&DetectionRecord{},
	}
}
