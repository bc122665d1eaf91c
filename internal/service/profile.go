package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/types"
)

var ErrInvalidJSONField = errors.New("dietary_preferences and budget_settings must be JSON objects")

// ProfileService handles user profile operations
type ProfileService struct {
	db     *gorm.DB
	cache  MetricsCache
	logger *zap.Logger
	now    func() time.Time
}

// Ensure ProfileService implements IProfileService and BudgetStore
var (
	_ IProfileService = (*ProfileService)(nil)
	_ BudgetStore     = (*ProfileService)(nil)
)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, cache MetricsCache, logger *zap.Logger) *ProfileService {
	if cache == nil {
		cache = NoopMetricsCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		db:     db,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// GetProfile retrieves a user's profile joined with the account
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user, profile), nil
}

// UpdateProfile replaces the profile attributes. When both height and
// current weight are present a BMI record is appended; a change of the
// weekly budget drops the user's cached metrics.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.ProfileResponse, error) {
	if !jsonObjectOrEmpty(req.DietaryPreferences) || !jsonObjectOrEmpty(req.BudgetSettings) {
		return nil, ErrInvalidJSONField
	}

	var record *models.BMIRecord
	if req.HeightCm != nil && req.CurrentWeightKg != nil {
		bmi, err := nutrition.BMI(*req.HeightCm, *req.CurrentWeightKg)
		if err != nil {
			return nil, err
		}
		record = &models.BMIRecord{
			UserID:     userID,
			HeightCm:   *req.HeightCm,
			WeightKg:   *req.CurrentWeightKg,
			BMI:        bmi,
			Category:   nutrition.BMICategory(bmi),
			RecordedAt: s.now(),
		}
	}

	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldBudget := profile.WeeklyBudget()

	profile.FullName = req.FullName
	profile.Age = req.Age
	profile.Gender = req.Gender
	profile.HeightCm = req.HeightCm
	profile.CurrentWeightKg = req.CurrentWeightKg
	profile.TargetWeightKg = req.TargetWeightKg
	profile.ActivityLevel = req.ActivityLevel
	profile.HealthGoals = req.HealthGoals
	profile.DietaryPreferences = jsonColumn(req.DietaryPreferences)
	profile.BudgetSettings = jsonColumn(req.BudgetSettings)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		if record != nil {
			return tx.Create(record).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if !sameBudget(oldBudget, profile.WeeklyBudget()) {
		s.cache.Invalidate(ctx, userID)
		s.logger.Debug("weekly budget changed", zap.String("user_id", userID.String()))
	}
	return toProfileResponse(user, profile), nil
}

// WeeklyBudget implements BudgetStore. A user without a profile has no budget.
func (s *ProfileService) WeeklyBudget(ctx context.Context, userID uuid.UUID) (*float64, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.WeeklyBudget(), nil
}

// LatestBMI returns the most recent BMI record or nil.
func (s *ProfileService) LatestBMI(ctx context.Context, userID uuid.UUID) (*models.BMIRecord, error) {
	var record models.BMIRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("recorded_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// load returns the user and their profile, creating an empty profile for
// accounts that predate it.
func (s *ProfileService) load(ctx context.Context, userID uuid.UUID) (*models.User, *models.UserProfile, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile := models.UserProfile{UserID: userID}
	if err := db.Where("user_id = ?", userID).FirstOrCreate(&profile).Error; err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}

func toProfileResponse(user *models.User, p *models.UserProfile) *types.ProfileResponse {
	return &types.ProfileResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Username:           user.Username,
		FullName:           p.FullName,
		Age:                p.Age,
		Gender:             p.Gender,
		HeightCm:           p.HeightCm,
		CurrentWeightKg:    p.CurrentWeightKg,
		TargetWeightKg:     p.TargetWeightKg,
		ActivityLevel:      p.ActivityLevel,
		HealthGoals:        p.HealthGoals,
		DietaryPreferences: rawOrNull(p.DietaryPreferences),
		BudgetSettings:     rawOrNull(p.BudgetSettings),
		WeeklyBudget:       p.WeeklyBudget(),
		UpdatedAt:          p.UpdatedAt,
	}
}

func jsonObjectOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var obj map[string]any
	return json.Unmarshal(trimmed, &obj) == nil
}

func jsonColumn(raw json.RawMessage) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return datatypes.JSON(trimmed)
}

func rawOrNull(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(j)
}

func sameBudget(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
