package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/database"
	"github.com/nutrilife/backend/internal/logger"
	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

type testUser struct {
	email        string
	username     string
	fullName     string
	weeklyBudget float64
	withPlan     bool
}

var testUsers = []testUser{
	{email: "juan.delacruz@example.com", username: "juandc", fullName: "Juan dela Cruz", weeklyBudget: 1500, withPlan: true},
	{email: "maria.santos@example.com", username: "mariasantos", fullName: "Maria Santos", weeklyBudget: 2100, withPlan: true},
	{email: "pedro.reyes@example.com", username: "pedroreyes", fullName: "Pedro Reyes"},
}

func main() {
	log := logger.Must(logger.Options{Name: "seed_test_users"})
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "testpassword123"
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	profiles := service.NewProfileService(db, service.NoopMetricsCache{}, log)
	plans := service.NewPlanService(service.NewPlanRepository(db), service.NewMealLogService(db),
		service.NewRecipeService(db), cfg.Location(), log)

	ctx := context.Background()
	for _, u := range testUsers {
		user, err := auth.Signup(ctx, &types.SignupRequest{Email: u.email, Username: u.username, Password: password})
		if errors.Is(err, service.ErrUserExists) {
			log.Info("user already exists", zap.String("username", u.username))
			continue
		}
		if err != nil {
			log.Fatal("failed to create user", zap.String("username", u.username), zap.Error(err))
		}

		if err := seedProfile(ctx, profiles, user, u); err != nil {
			log.Fatal("failed to seed profile", zap.String("username", u.username), zap.Error(err))
		}

		if u.withPlan {
			today, err := plans.GeneratePlan(ctx, user.ID, &types.GeneratePlanRequest{})
			switch {
			case errors.Is(err, service.ErrNoRecipes):
				log.Warn("recipe catalog is empty, run seed_recipes first", zap.String("username", u.username))
			case err != nil:
				log.Fatal("failed to generate plan", zap.String("username", u.username), zap.Error(err))
			default:
				log.Info("generated plan", zap.String("username", u.username), zap.Int("days", today.TotalDays))
			}
		}

		log.Info("created test user", zap.String("username", u.username), zap.String("email", u.email))
	}
}

func seedProfile(ctx context.Context, profiles *service.ProfileService, user *models.User, u testUser) error {
	req := &types.UpdateProfileRequest{
		FullName:      u.fullName,
		ActivityLevel: "moderate",
	}
	if u.weeklyBudget > 0 {
		raw, err := json.Marshal(map[string]float64{"weeklyBudget": u.weeklyBudget})
		if err != nil {
			return err
		}
		req.BudgetSettings = raw
	}
	_, err := profiles.UpdateProfile(ctx, user.ID, req)
	return err
}
