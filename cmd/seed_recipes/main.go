package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/database"
	"github.com/nutrilife/backend/internal/logger"
	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

// Costs are per serving in pesos.
var catalog = []types.CreateRecipeRequest{
	{
		Name: "Champorado", Category: "breakfast", Servings: 4, PrepTimeMinutes: 30,
		Description:  "Chocolate rice porridge made with tablea and glutinous rice",
		Ingredients:  []string{"1 cup malagkit rice", "4 tablea discs", "5 cups water", "1/2 cup sugar", "evaporated milk"},
		Instructions: []string{"Boil rice in water until soft", "Melt tablea into the porridge", "Sweeten and top with milk"},
		Calories:     380, Protein: 7, Carbs: 72, Fat: 8, Fiber: 3, Cost: 45,
	},
	{
		Name: "Tapsilog", Category: "breakfast", Servings: 2, PrepTimeMinutes: 25,
		Description:  "Cured beef tapa with garlic fried rice and a fried egg",
		Ingredients:  []string{"250g beef sirloin", "3 tbsp soy sauce", "1 head garlic", "2 cups day-old rice", "2 eggs"},
		Instructions: []string{"Marinate beef overnight", "Fry garlic rice", "Pan-fry tapa and eggs"},
		Calories:     550, Protein: 32, Carbs: 55, Fat: 22, Fiber: 1, Cost: 90,
	},
	{
		Name: "Arroz Caldo", Category: "breakfast", Servings: 4, PrepTimeMinutes: 45,
		Description:  "Ginger chicken rice porridge with toasted garlic",
		Ingredients:  []string{"500g chicken", "1 cup rice", "thumb of ginger", "fish sauce", "toasted garlic", "spring onion"},
		Instructions: []string{"Saute ginger and chicken", "Add rice and water, simmer until thick", "Season and garnish"},
		Calories:     420, Protein: 24, Carbs: 50, Fat: 12, Fiber: 1, Cost: 60,
	},
	{
		Name: "Pandesal with Kesong Puti", Category: "breakfast", Servings: 1, PrepTimeMinutes: 5,
		Description:  "Fresh bread rolls with white carabao cheese",
		Ingredients:  []string{"3 pandesal", "50g kesong puti"},
		Instructions: []string{"Warm the pandesal", "Fill with sliced cheese"},
		Calories:     340, Protein: 14, Carbs: 48, Fat: 10, Fiber: 2, Cost: 35,
	},
	{
		Name: "Sinigang na Baboy", Category: "lunch", Servings: 4, PrepTimeMinutes: 60,
		Description:  "Sour tamarind soup with pork and vegetables",
		Ingredients:  []string{"500g pork ribs", "tamarind mix", "kangkong", "radish", "string beans", "tomatoes", "onion"},
		Instructions: []string{"Boil pork with tomatoes and onion", "Add tamarind and vegetables", "Season with fish sauce"},
		Calories:     420, Protein: 28, Carbs: 18, Fat: 26, Fiber: 4, Cost: 120,
	},
	{
		Name: "Chicken Adobo", Category: "lunch", Servings: 4, PrepTimeMinutes: 50,
		Description:  "Chicken braised in vinegar, soy sauce and garlic",
		Ingredients:  []string{"1kg chicken thighs", "1/2 cup soy sauce", "1/3 cup cane vinegar", "1 head garlic", "bay leaves", "peppercorns"},
		Instructions: []string{"Marinate chicken", "Simmer until tender", "Reduce sauce"},
		Calories:     520, Protein: 38, Carbs: 6, Fat: 36, Fiber: 0, Cost: 95,
	},
	{
		Name: "Ginisang Monggo", Category: "lunch", Servings: 4, PrepTimeMinutes: 45,
		Description:  "Sauteed mung bean stew with malunggay",
		Ingredients:  []string{"1 cup mung beans", "100g pork", "malunggay leaves", "garlic", "onion", "tomato"},
		Instructions: []string{"Boil mung beans until soft", "Saute aromatics and pork", "Combine and add malunggay"},
		Calories:     360, Protein: 20, Carbs: 40, Fat: 12, Fiber: 12, Cost: 55,
	},
	{
		Name: "Pinakbet", Category: "lunch", Servings: 4, PrepTimeMinutes: 35,
		Description:  "Mixed vegetables with bagoong",
		Ingredients:  []string{"ampalaya", "eggplant", "okra", "squash", "string beans", "shrimp paste"},
		Instructions: []string{"Saute garlic, onion and bagoong", "Add vegetables by cooking time", "Simmer until tender"},
		Calories:     280, Protein: 10, Carbs: 30, Fat: 14, Fiber: 9, Cost: 65,
	},
	{
		Name: "Bistek Tagalog", Category: "dinner", Servings: 4, PrepTimeMinutes: 40,
		Description:  "Beef steak in calamansi and soy sauce with onion rings",
		Ingredients:  []string{"500g beef sirloin", "calamansi", "soy sauce", "2 onions", "pepper"},
		Instructions: []string{"Marinate beef", "Sear beef and onions", "Simmer in marinade"},
		Calories:     480, Protein: 36, Carbs: 10, Fat: 30, Fiber: 1, Cost: 110,
	},
	{
		Name: "Tinolang Manok", Category: "dinner", Servings: 4, PrepTimeMinutes: 45,
		Description:  "Ginger chicken soup with green papaya and chili leaves",
		Ingredients:  []string{"1kg chicken", "green papaya", "ginger", "chili leaves", "fish sauce"},
		Instructions: []string{"Saute ginger and chicken", "Add water and papaya", "Finish with chili leaves"},
		Calories:     350, Protein: 34, Carbs: 12, Fat: 18, Fiber: 2, Cost: 85,
	},
	{
		Name: "Paksiw na Isda", Category: "dinner", Servings: 4, PrepTimeMinutes: 30,
		Description:  "Fish poached in vinegar with ginger and eggplant",
		Ingredients:  []string{"500g galunggong", "vinegar", "ginger", "eggplant", "ampalaya"},
		Instructions: []string{"Layer vegetables and fish", "Add vinegar and water", "Simmer without stirring"},
		Calories:     300, Protein: 30, Carbs: 8, Fat: 14, Fiber: 3, Cost: 70,
	},
	{
		Name: "Laing", Category: "dinner", Servings: 4, PrepTimeMinutes: 60,
		Description:  "Dried taro leaves simmered in coconut milk",
		Ingredients:  []string{"dried taro leaves", "coconut milk", "pork", "chili", "shrimp paste"},
		Instructions: []string{"Simmer coconut milk with aromatics", "Add taro leaves without stirring", "Cook until oily"},
		Calories:     410, Protein: 12, Carbs: 16, Fat: 34, Fiber: 6, Cost: 75,
	},
	{
		Name: "Turon", Category: "snacks", Servings: 6, PrepTimeMinutes: 20,
		Description:  "Caramelized banana and jackfruit spring rolls",
		Ingredients:  []string{"saba bananas", "jackfruit strips", "lumpia wrappers", "brown sugar"},
		Instructions: []string{"Wrap banana and jackfruit", "Fry with sugar until caramelized"},
		Calories:     210, Protein: 2, Carbs: 38, Fat: 6, Fiber: 2, Cost: 20,
	},
	{
		Name: "Banana Cue", Category: "snacks", Servings: 4, PrepTimeMinutes: 15,
		Description:  "Skewered fried saba coated in caramel",
		Ingredients:  []string{"saba bananas", "brown sugar", "oil"},
		Instructions: []string{"Fry bananas", "Add sugar and coat", "Skewer"},
		Calories:     190, Protein: 1, Carbs: 40, Fat: 4, Fiber: 3, Cost: 15,
	},
	{
		Name: "Kamote Cue", Category: "snacks", Servings: 4, PrepTimeMinutes: 20,
		Description:  "Caramelized sweet potato skewers",
		Ingredients:  []string{"sweet potatoes", "brown sugar", "oil"},
		Instructions: []string{"Slice sweet potatoes", "Fry with sugar until glazed"},
		Calories:     230, Protein: 2, Carbs: 44, Fat: 6, Fiber: 4, Cost: 15,
	},
	{
		Name: "Puto", Category: "snacks", Servings: 12, PrepTimeMinutes: 35,
		Description:  "Steamed rice cakes",
		Ingredients:  []string{"rice flour", "sugar", "baking powder", "coconut milk", "cheese"},
		Instructions: []string{"Mix batter", "Fill molds", "Steam for 15 minutes"},
		Calories:     150, Protein: 3, Carbs: 28, Fat: 3, Fiber: 0, Cost: 12,
	},
}

func main() {
	log := logger.Must(logger.Options{Name: "seed_recipes"})
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	created, skipped, err := seed(context.Background(), db, service.NewRecipeService(db), log)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("recipe catalog seeded", zap.Int("created", created), zap.Int("skipped", skipped))
}

func seed(ctx context.Context, db *gorm.DB, recipes *service.RecipeService, log *zap.Logger) (int, int, error) {
	created, skipped := 0, 0
	for i := range catalog {
		req := &catalog[i]

		var existing models.Recipe
		err := db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}

		recipe, err := recipes.CreateRecipe(ctx, nil, req)
		if err != nil {
			return created, skipped, err
		}
		log.Debug("created recipe", zap.String("name", recipe.Name), zap.String("category", recipe.Category))
		created++
	}
	return created, skipped, nil
}
