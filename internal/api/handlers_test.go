package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

func TestProfileRoutes(t *testing.T) {
	env := newTestEnv(t)
	budget := 700.0
	profile := &types.ProfileResponse{ID: env.userID, Username: "tester", WeeklyBudget: &budget}
	env.profile.On("GetProfile", mock.Anything, env.userID).Return(profile, nil).Once()
	env.profile.On("UpdateProfile", mock.Anything, env.userID, mock.MatchedBy(func(r *types.UpdateProfileRequest) bool {
		return r.FullName == "Juan"
	})).Return(profile, nil).Once()
	env.profile.On("UpdateProfile", mock.Anything, env.userID, mock.Anything).Return(nil, nutrition.ErrImplausibleBody).Once()

	w := env.do(http.MethodGet, "/api/me/profile", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 700.0, decodeBody(t, w)["weekly_budget"])

	w = env.do(http.MethodPut, "/api/me/profile", map[string]any{"full_name": "Juan"}, testToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPut, "/api/me/profile", map[string]any{"height_cm": 900, "current_weight_kg": 70}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardRoute(t *testing.T) {
	env := newTestEnv(t)
	env.progress.On("Dashboard", mock.Anything, env.userID).Return(&types.DashboardResponse{
		QuickStats: nutrition.QuickStats{MealsLogged: 2, TotalMeals: 3},
		Metrics:    nutrition.Metrics{WeeklyAdherence: 80},
	}, nil).Once()

	w := env.do(http.MethodGet, "/api/me/dashboard", nil, testToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 2.0, body["quickStats"].(map[string]any)["mealsLogged"])
	assert.Equal(t, 80.0, body["metrics"].(map[string]any)["weeklyAdherence"])
}

func TestProgressRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.progress.On("Metrics", mock.Anything, env.userID).Return(nutrition.Metrics{WeeklyAdherence: 67, BudgetVariance: -700}, nil).Once()
	env.progress.On("History", mock.Anything, env.userID, 14).Return([]nutrition.DaySummary{{Date: "2024-03-10", Adherence: 50}}, nil).Once()
	env.progress.On("Series", mock.Anything, env.userID, service.DefaultWindowDays).Return([]nutrition.SeriesPoint{{Date: "2024-03-10"}}, nil).Once()

	w := env.do(http.MethodGet, "/api/me/progress", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -700.0, decodeBody(t, w)["budgetVariance"])

	w = env.do(http.MethodGet, "/api/me/progress/history?days=14", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["days"], 1)

	w = env.do(http.MethodGet, "/api/me/progress/nutrition", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/me/progress/history?days=week", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealLogRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.progress.On("MealLogs", mock.Anything, env.userID, "2024-03-10").
		Return(&nutrition.DayLog{Date: "2024-03-10", Meals: []nutrition.MealLogEntry{}}, nil).Once()
	env.progress.On("MealLogs", mock.Anything, env.userID, "yesterday").Return(nil, service.ErrInvalidDate).Once()
	env.progress.On("LogMeal", mock.Anything, env.userID, mock.MatchedBy(func(r *types.LogMealRequest) bool {
		return r.MealID == "m1" && r.Calories.Float() == 550
	})).Return(&types.LogMealResponse{
		Entry: nutrition.MealLogEntry{ID: "m1", MealSlot: nutrition.Breakfast, Status: nutrition.StatusEaten},
	}, nil).Once()
	env.progress.On("LogMeal", mock.Anything, env.userID, mock.Anything).Return(nil, service.ErrInvalidMealSlot).Once()

	w := env.do(http.MethodGet, "/api/me/meal-logs?date=2024-03-10", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/me/meal-logs?date=yesterday", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/me/meal-logs",
		`{"mealId":"m1","mealSlot":"breakfast","status":"eaten","calories":"550"}`, testToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "m1", decodeBody(t, w)["entry"].(map[string]any)["id"])

	w = env.do(http.MethodPost, "/api/me/meal-logs",
		`{"mealId":"m2","mealSlot":"brunch","status":"eaten"}`, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/me/meal-logs", `{"mealSlot":"lunch"}`, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanRoutes(t *testing.T) {
	env := newTestEnv(t)
	today := &types.TodayPlan{PlanID: uuid.New(), CurrentIndex: 0, TotalDays: 2, Meals: []nutrition.MealLogEntry{}}
	env.plans.On("SavePlanDays", mock.Anything, env.userID, mock.MatchedBy(func(days []nutrition.PlanDay) bool {
		return len(days) == 1
	})).Return(today, nil).Once()
	env.plans.On("GeneratePlan", mock.Anything, env.userID, &types.GeneratePlanRequest{}).Return(today, nil).Once()
	env.plans.On("GeneratePlan", mock.Anything, env.userID, &types.GeneratePlanRequest{Days: 3}).Return(nil, service.ErrNoRecipes).Once()
	env.plans.On("Today", mock.Anything, env.userID).Return(nil, service.ErrPlanNotFound).Once()
	env.plans.On("Advance", mock.Anything, env.userID).Return(&types.AdvanceResponse{Advanced: true, Plan: *today}, nil).Once()
	env.plans.On("GetPlan", mock.Anything, env.userID).Return(&models.MealPlan{
		ID:   today.PlanID,
		Days: []byte(`[{"date":"2024-03-10","meals":{"lunch":{"id":"x","recipeName":"Adobo"}}}]`),
	}, nil).Once()

	w := env.do(http.MethodPut, "/api/me/plan", `{"days":[{"date":"2024-03-10","meals":{}}]}`, testToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/me/plan/generate", nil, testToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/api/me/plan/generate", map[string]int{"days": 3}, testToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(http.MethodGet, "/api/me/plan/today", nil, testToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/me/plan/advance", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["advanced"])

	w = env.do(http.MethodGet, "/api/me/plan", nil, testToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["days"], 1)
}

func TestRecipeRoutes(t *testing.T) {
	env := newTestEnv(t)
	recipe := &models.Recipe{ID: uuid.New(), Name: "Sinigang", Category: "lunch"}
	env.recipes.On("ListRecipes", mock.Anything, service.RecipeFilter{Category: "lunch", Query: "sini", Limit: 5}).
		Return([]*models.Recipe{recipe}, nil).Once()
	env.recipes.On("GetRecipe", mock.Anything, recipe.ID).Return(recipe, nil).Once()
	missing := uuid.New()
	env.recipes.On("GetRecipe", mock.Anything, missing).Return(nil, service.ErrRecipeNotFound).Once()
	env.recipes.On("CreateRecipe", mock.Anything, &env.userID, mock.Anything).Return(recipe, nil).Once()

	w := env.do(http.MethodGet, "/api/recipes?category=lunch&q=sini&limit=5", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recipes"], 1)

	w = env.do(http.MethodGet, "/api/recipes/"+recipe.ID.String(), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/recipes/"+missing.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/recipes/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	create := map[string]any{"name": "Sinigang", "category": "lunch", "calories": 420}
	w = env.do(http.MethodPost, "/api/recipes", create, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/recipes", create, testToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, decodeBody(t, w), "recipe")
}

func multipartImage(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="capture.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestDetectRoute(t *testing.T) {
	env := newTestEnv(t)
	env.detection.On("Detect", mock.Anything, env.userID, "onions", []byte("jpeg-bytes"), "image/jpeg").
		Return(&types.DetectionResponse{
			Category:    "onions",
			Ingredients: []types.DetectedIngredient{{Name: "Onion", Confidence: 0.9}},
		}, nil).Once()
	env.detection.On("Detect", mock.Anything, env.userID, "bad!", mock.Anything, mock.Anything).
		Return(nil, service.ErrInvalidCategory).Once()

	send := func(category, field string) *httptest.ResponseRecorder {
		body, contentType := multipartImage(t, field, []byte("jpeg-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/detect/"+category, body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+testToken)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := send("onions", "image")
	require.Equal(t, http.StatusOK, w.Code)
	ingredients := decodeBody(t, w)["ingredients"].([]any)
	assert.Equal(t, "Onion", ingredients[0].(map[string]any)["name"])

	w = send("onions", "photo")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send("bad!", "image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetectRouteServerError(t *testing.T) {
	env := newTestEnv(t)
	env.detection.On("Detect", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("database is locked")).Once()

	body, contentType := multipartImage(t, "image", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/detect/onions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
