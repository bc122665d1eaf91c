package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/types"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRecipe  = errors.New("invalid recipe")
)

// RecipeFilter narrows a catalog listing. Zero values match everything.
type RecipeFilter struct {
	Category string
	Query    string
	Limit    int
}

// RecipeService handles recipe catalog operations
type RecipeService struct {
	db *gorm.DB
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns catalog entries ordered by name
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if filter.Category != "" {
		slot, ok := nutrition.ParseMealSlot(filter.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRecipe, filter.Category)
		}
		q = q.Where("category = ?", string(slot))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recipes []*models.Recipe
	if err := q.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe validates and stores a catalog entry
func (s *RecipeService) CreateRecipe(ctx context.Context, createdBy *uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	slot, ok := nutrition.ParseMealSlot(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRecipe, req.Category)
	}
	for _, v := range []float64{req.Calories, req.Protein, req.Carbs, req.Fat, req.Fiber, req.Cost} {
		if v < 0 {
			return nil, fmt.Errorf("%w: nutrition and cost must not be negative", ErrInvalidRecipe)
		}
	}

	ingredients, err := json.Marshal(nonNil(req.Ingredients))
	if err != nil {
		return nil, err
	}
	instructions, err := json.Marshal(nonNil(req.Instructions))
	if err != nil {
		return nil, err
	}

	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}

	recipe := &models.Recipe{
		Name:            name,
		Description:     req.Description,
		Category:        string(slot),
		ImageURL:        req.ImageURL,
		Ingredients:     datatypes.JSON(ingredients),
		Instructions:    datatypes.JSON(instructions),
		Calories:        req.Calories,
		Protein:         req.Protein,
		Carbs:           req.Carbs,
		Fat:             req.Fat,
		Fiber:           req.Fiber,
		Cost:            req.Cost,
		Servings:        servings,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CreatedBy:       createdBy,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// BySlot groups the whole catalog by meal slot, each group ordered by name.
func (s *RecipeService) BySlot(ctx context.Context) (map[nutrition.MealSlot][]*models.Recipe, error) {
	recipes, err := s.ListRecipes(ctx, RecipeFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[nutrition.MealSlot][]*models.Recipe)
	for _, r := range recipes {
		slot, ok := nutrition.ParseMealSlot(r.Category)
		if !ok {
			continue
		}
		out[slot] = append(out[slot], r)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
