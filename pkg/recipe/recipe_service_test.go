package recipe_test

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/testutil"
	"khadija-recipes/pkg/recipe"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service recipe.RecipeService
	storage *testutil.Storage
	flour   *entities.Ingredient
	egg     *entities.Ingredient
	gram    *entities.Unit
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)

	flour := &entities.Ingredient{Name: entities.LocalizedText{"de": "Mehl", "fr": "Farine"}}
	egg := &entities.Ingredient{
		Name:       entities.LocalizedText{"de": "Ei", "fr": "Oeuf"},
		NamePlural: entities.LocalizedText{"de": "Eier", "fr": "Oeufs"},
	}
	gram := &entities.Unit{Abbreviation: "g", Name: entities.Text("Gramm")}
	require.NoError(t, db.Create(flour).Error)
	require.NoError(t, db.Create(egg).Error)
	require.NoError(t, db.Create(gram).Error)

	store := &testutil.Storage{}
	service := recipe.NewRecipeService(
		recipe.NewRecipeRepository(db),
		recipe.NewIngredientRepository(db),
		recipe.NewUnitRepository(db),
		store,
	)
	return fixture{db: db, service: service, storage: store, flour: flour, egg: egg, gram: gram}
}

func (f fixture) request() domain.RecipeRequest {
	prep, cook := 20, 40
	qty := decimal.NewFromInt(200)
	three := decimal.NewFromInt(3)
	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return domain.RecipeRequest{
		Title:         map[string]string{"de": "Tajine mit Huhn", "fr": "Tajine au poulet"},
		Introduction:  map[string]string{"de": "Ein Klassiker", "fr": "Un classique"},
		Category:      "main",
		PrepTime:      &prep,
		CookTime:      &cook,
		MainImage:     "recipes/tajine.jpg",
		IsPublished:   true,
		DatePublished: &published,
		Ingredients: []domain.RecipeIngredientRequest{
			{IngredientID: f.flour.ID, Quantity: &qty, UnitID: &f.gram.ID, Order: 0},
			{IngredientID: f.egg.ID, Quantity: &three, Order: 1},
		},
		Steps: []domain.RecipeStepRequest{
			{StepNumber: 1, Instruction: map[string]string{"de": "Zwiebeln schneiden", "fr": "Couper les oignons"}},
			{StepNumber: 2, Instruction: map[string]string{"de": "Alles schmoren"}},
		},
	}
}

func TestCreateRecipeAndGetDetail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)
	assert.Equal(t, "tajine-mit-huhn", created.SlugDefault)
	assert.Len(t, created.Ingredients, 2)
	assert.Len(t, created.Steps, 2)

	frCtx := i18n.WithLanguage(ctx, "fr")
	detail, err := f.service.GetRecipeDetail(frCtx, "tajine-au-poulet")
	require.NoError(t, err)
	assert.Equal(t, "Tajine au poulet", detail.Title)
	assert.Equal(t, "/fr/recipes/tajine-au-poulet", detail.URL)
	assert.Equal(t, "https://cdn.test/recipes/tajine.jpg", detail.ImageURL)
	assert.Equal(t, 60, *detail.TotalTime)
	assert.Equal(t, "200 g Farine", detail.Ingredients[0].Label)
	assert.Equal(t, "3 Oeufs", detail.Ingredients[1].Label)
	assert.Equal(t, "Couper les oignons", detail.Steps[0].Instruction)
	assert.Equal(t, "Alles schmoren", detail.Steps[1].Instruction)
	assert.Equal(t, "/de/recipes/tajine-mit-huhn", detail.Alternates["de"])
	assert.Equal(t, "/en/recipes/tajine-mit-huhn", detail.Alternates["en"])

	var schema map[string]any
	require.NoError(t, json.Unmarshal(detail.JSONSchema, &schema))
	assert.Equal(t, "Recipe", schema["@type"])
	assert.Equal(t, "PT20M", schema["prepTime"])
	assert.Equal(t, "PT60M", schema["totalTime"])
	assert.Equal(t, "2024-03-01", schema["datePublished"])
	assert.Len(t, schema["recipeInstructions"], 2)

	// the default slug resolves too, whatever the active language
	_, err = f.service.GetRecipeDetail(frCtx, "tajine-mit-huhn")
	require.NoError(t, err)
}

func TestGetRecipeDetailHidesUnpublishedAndMissing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	req := f.request()
	req.IsPublished = false
	_, err := f.service.CreateRecipe(ctx, req)
	require.NoError(t, err)

	_, err = f.service.GetRecipeDetail(ctx, "tajine-mit-huhn")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.service.GetRecipeDetail(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestCreateRecipeRejectsBadReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	dupStep := f.request()
	dupStep.Steps[1].StepNumber = 1
	_, err := f.service.CreateRecipe(ctx, dupStep)
	assert.ErrorIs(t, err, domain.ErrDuplicateStepNumber)

	dupIngredient := f.request()
	dupIngredient.Ingredients[1].IngredientID = f.flour.ID
	_, err = f.service.CreateRecipe(ctx, dupIngredient)
	assert.ErrorIs(t, err, domain.ErrDuplicateIngredient)

	unknown := f.request()
	unknown.Ingredients[0].IngredientID = 9999
	_, err = f.service.CreateRecipe(ctx, unknown)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	missingUnit := f.request()
	badUnit := uint(9999)
	missingUnit.Ingredients[0].UnitID = &badUnit
	_, err = f.service.CreateRecipe(ctx, missingUnit)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	var count int64
	f.db.Model(&entities.Recipe{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)

	req := f.request()
	req.Title = map[string]string{"de": "Tajine mit Lamm"}
	req.Ingredients = req.Ingredients[1:]
	req.Steps = []domain.RecipeStepRequest{{StepNumber: 1, Instruction: map[string]string{"de": "Schmoren"}}}

	updated, err := f.service.UpdateRecipe(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "tajine-mit-lamm", updated.SlugDefault)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, f.egg.ID, updated.Ingredients[0].IngredientID)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "Schmoren", updated.Steps[0].Instruction.Default())
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	_, err = f.service.UpdateRecipe(ctx, 9999, req)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteRecipe(ctx, created.ID))
	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, created.ID), domain.ErrRecipeNotFound)

	var links int64
	f.db.Model(&entities.RecipeIngredient{}).Count(&links)
	assert.Zero(t, links)
}

func TestGetRecipesListsPublishedOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)
	draft := f.request()
	draft.Title = map[string]string{"de": "Entwurf"}
	draft.IsPublished = false
	_, err = f.service.CreateRecipe(ctx, draft)
	require.NoError(t, err)

	res, err := f.service.GetRecipes(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Pagination.Total)
	assert.Equal(t, domain.DefaultLimit, res.Pagination.Limit)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Tajine mit Huhn", res.Recipes[0].Title)

	all, total, err := f.service.AdminGetRecipes(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestFeedAndSitemap(t *testing.T) {
	f := setup(t)
	ctx := i18n.WithLanguage(context.Background(), "fr")

	_, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)
	noImage := f.request()
	noImage.Title = map[string]string{"de": "Ohne Bild"}
	noImage.MainImage = ""
	_, err = f.service.CreateRecipe(ctx, noImage)
	require.NoError(t, err)

	items, err := f.service.GetRecentRecipes(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tajine au poulet", items[0].Title)
	assert.Equal(t, "/fr/recipes/tajine-au-poulet", items[0].Link)
	assert.Equal(t, "https://cdn.test/recipes/tajine.jpg", items[0].ImageURL)

	items, err = f.service.GetRecentRecipes(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, items)

	entries, err := f.service.GetSitemapEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2*len(i18n.Languages()))
}

func TestUploadRecipeImage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)

	file := &multipart.FileHeader{Filename: "prep.jpg"}
	_, err = f.service.UploadRecipeImage(ctx, created.ID, "cover", file)
	assert.ErrorIs(t, err, domain.ErrInvalidImageKind)

	res, err := f.service.UploadRecipeImage(ctx, created.ID, "main", file)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+res.Key, res.URL)
	assert.Equal(t, []string{"recipes/tajine.jpg"}, f.storage.Deleted)

	stored, err := f.service.AdminGetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Key, stored.MainImage)
	assert.Len(t, stored.Steps, 2, "image upload leaves steps alone")
}

type failingSave struct {
	recipe.RecipeRepository
}

func (failingSave) SaveRecipe(ctx context.Context, r *entities.Recipe) error {
	return errors.New("disk full")
}

func TestUploadRecipeImageKeepsOldImageWhenSaveFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.request())
	require.NoError(t, err)

	store := &testutil.Storage{}
	service := recipe.NewRecipeService(
		failingSave{recipe.NewRecipeRepository(f.db)},
		recipe.NewIngredientRepository(f.db),
		recipe.NewUnitRepository(f.db),
		store,
	)

	_, err = service.UploadRecipeImage(ctx, created.ID, "main", &multipart.FileHeader{Filename: "new.png"})
	assert.EqualError(t, err, "disk full")
	require.Len(t, store.Uploaded, 1)
	assert.Equal(t, store.Uploaded, store.Deleted, "only the new upload is removed")

	stored, err := f.service.AdminGetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "recipes/tajine.jpg", stored.MainImage)
}
