package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/nutrition"
)

const RoleUser = "user"

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'user'" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Roles lists the roles carried in issued tokens.
func (u *User) Roles() []string {
	return []string{u.Role}
}

// UserProfile holds the free-form attributes a user maintains about themselves.
type UserProfile struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	FullName           string         `gorm:"size:255" json:"full_name"`
	Age                *int           `json:"age"`
	Gender             string         `gorm:"size:20" json:"gender"`
	HeightCm           *float64       `json:"height_cm"`
	CurrentWeightKg    *float64       `json:"current_weight_kg"`
	TargetWeightKg     *float64       `json:"target_weight_kg"`
	ActivityLevel      string         `gorm:"size:50" json:"activity_level"`
	HealthGoals        string         `gorm:"type:text" json:"health_goals"`
	DietaryPreferences datatypes.JSON `json:"dietary_preferences"`
	BudgetSettings     datatypes.JSON `json:"budget_settings"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WeeklyBudget reads weeklyBudget out of the budget settings blob. Clients
// store it as a number or a numeric string; absent, empty or null means no
// budget.
func (p *UserProfile) WeeklyBudget() *float64 {
	if p == nil || len(p.BudgetSettings) == 0 {
		return nil
	}
	var settings map[string]any
	if err := json.Unmarshal(p.BudgetSettings, &settings); err != nil {
		return nil
	}
	raw, ok := settings["weeklyBudget"]
	if !ok || raw == nil || raw == "" {
		return nil
	}
	budget := nutrition.Normalize(raw)
	return &budget
}

// BMIRecord is one body-mass-index measurement.
type BMIRecord struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	HeightCm   float64   `gorm:"not null" json:"height_cm"`
	WeightKg   float64   `gorm:"not null" json:"weight_kg"`
	BMI        float64   `gorm:"column:bmi;not null" json:"bmi"`
	Category   string    `gorm:"size:30;not null" json:"category"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}

func (BMIRecord) TableName() string {
	return "bmi_records"
}

func (r *BMIRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
