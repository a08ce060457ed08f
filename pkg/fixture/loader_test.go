package fixture_test

import (
	"context"
	"strings"
	"testing"

	"khadija-recipes/entities"
	"khadija-recipes/internal/testutil"
	"khadija-recipes/pkg/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `[
  {"model": "recipes.unit", "pk": 3, "fields": {
    "abbreviation": "g", "name_de": "Gramm", "name_en": "gram", "name_fr": null,
    "name_plural_de": "Gramm", "name_plural_en": "grams",
    "created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-01-01T10:00:00Z"}},
  {"model": "recipes.ingredient", "pk": 10, "fields": {"name_de": "Mehl", "name_fr": "Farine", "name_plural_de": "Mehl"}},
  {"model": "recipes.recipe", "pk": 5, "fields": {
    "title_de": "Fladenbrot", "title_fr": "Pain plat", "slug_de": "fladenbrot",
    "introduction_de": "Einfach und schnell.", "difficulty": "easy", "category": "bread",
    "prep_time": 15, "cook_time": null, "main_image": "recipes/brot.jpg",
    "is_published": true, "date_published": "2024-03-01T10:00:00Z"}},
  {"model": "recipes.recipeingredient", "pk": 1, "fields": {"recipe": 5, "ingredient": 10, "quantity": "250.00", "unit": 3, "unit_text": "", "order": 0}},
  {"model": "recipes.recipestep", "pk": 1, "fields": {"recipe": 5, "step_number": 1, "instruction_de": "Alles verkneten."}},
  {"model": "products.product", "pk": 2, "fields": {
    "title_de": "Harissa", "description_de": "Scharfe Paste.",
    "total_fat": "1.5", "saturated_fat": "0.2", "total_carbo": "8.0", "sugar": "4.0", "protein": "2.0", "salt": "1.20", "price": "6.90"}},
  {"model": "products.productimage", "pk": 4, "fields": {"product": 2, "image": "product-images/harissa.jpg", "alt_img_de": "Ein Glas Harissa"}},
  {"model": "core.faq", "pk": 1, "fields": {"question_de": "Versand?", "answer_de": "Ja."}}
]`

func records(t *testing.T, s string) []fixture.Record {
	t.Helper()
	recs, err := fixture.LoadRecords(strings.NewReader(s))
	require.NoError(t, err)
	return recs
}

func TestLoadCreatesAllModels(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	report, err := fixture.NewLoader(db).Load(ctx, records(t, dump), false)
	require.NoError(t, err)
	assert.Equal(t, fixture.LoadReport{Created: 8}, report)

	var unit entities.Unit
	require.NoError(t, db.First(&unit, 3).Error)
	assert.Equal(t, "Gramm", unit.NameDefault)
	assert.Equal(t, "grams", unit.NamePlural["en"])
	_, hasFr := unit.Name["fr"]
	assert.False(t, hasFr)

	var r entities.Recipe
	require.NoError(t, db.Preload("Ingredients").Preload("Steps").First(&r, 5).Error)
	assert.Equal(t, "Pain plat", r.Title.In("fr"))
	assert.Equal(t, "pain-plat", r.Slug["fr"])
	assert.Equal(t, entities.CategoryBread, r.Category)
	require.NotNil(t, r.PrepTime)
	assert.Equal(t, 15, *r.PrepTime)
	assert.Nil(t, r.CookTime)
	assert.True(t, r.IsPublished)
	require.NotNil(t, r.DatePublished)
	assert.Equal(t, 2024, r.DatePublished.Year())
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "250", r.Ingredients[0].Quantity.String())
	require.NotNil(t, r.Ingredients[0].UnitID)
	assert.Equal(t, uint(3), *r.Ingredients[0].UnitID)
	require.Len(t, r.Steps, 1)

	var p entities.Product
	require.NoError(t, db.Preload("Images").First(&p, 2).Error)
	require.NotNil(t, p.Calories)
	assert.Equal(t, "53.5", p.Calories.String())
	require.Len(t, p.Images, 1)
	assert.Equal(t, "Ein Glas Harissa", p.Images[0].Alt.Default())

	var faq entities.Faq
	require.NoError(t, db.First(&faq, 1).Error)
	assert.True(t, faq.IsActive)
}

func TestLoadSkipsOrUpdatesExisting(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	loader := fixture.NewLoader(db)

	_, err := loader.Load(ctx, records(t, dump), false)
	require.NoError(t, err)

	again, err := loader.Load(ctx, records(t, dump), false)
	require.NoError(t, err)
	assert.Equal(t, fixture.LoadReport{Skipped: 8}, again)

	changed := `[{"model": "recipes.unit", "pk": 3, "fields": {"name_en": "gramme"}},
	             {"model": "core.faq", "pk": 1, "fields": {"is_active": false}}]`
	report, err := loader.Load(ctx, records(t, changed), true)
	require.NoError(t, err)
	assert.Equal(t, fixture.LoadReport{Updated: 2}, report)

	var unit entities.Unit
	require.NoError(t, db.First(&unit, 3).Error)
	assert.Equal(t, "gramme", unit.Name["en"])
	assert.Equal(t, "Gramm", unit.Name.Default())

	var faq entities.Faq
	require.NoError(t, db.First(&faq, 1).Error)
	assert.False(t, faq.IsActive)
}

func TestLoadMatchesUnitsByDefaultName(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	existing := &entities.Unit{Abbreviation: "g", Name: entities.Text("Gramm")}
	require.NoError(t, db.Create(existing).Error)

	report, err := fixture.NewLoader(db).Load(ctx, records(t,
		`[{"model": "recipes.unit", "pk": 99, "fields": {"name_de": "Gramm", "name_en": "gram"}}]`), true)
	require.NoError(t, err)
	assert.Equal(t, fixture.LoadReport{Updated: 1}, report)

	var count int64
	db.Model(&entities.Unit{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var unit entities.Unit
	require.NoError(t, db.First(&unit, existing.ID).Error)
	assert.Equal(t, "gram", unit.Name["en"])
}

func TestLoadIsolatesBadRecords(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	input := `[
	  {"model": "recipes.ingredient", "pk": 1, "fields": {"name_de": "Salz"}},
	  {"model": "recipes.recipestep", "pk": 1, "fields": {"recipe": 404, "step_number": 1, "instruction_de": "Nichts."}},
	  {"model": "recipes.recipe", "pk": 2, "fields": {"title_de": "Suppe", "prep_time": "lang"}},
	  {"model": "auth.user", "pk": 1, "fields": {}},
	  {"model": "recipes.ingredient", "pk": 2, "fields": {"name_de": "Pfeffer"}}
	]`
	report, err := fixture.NewLoader(db).Load(ctx, records(t, input), false)
	require.NoError(t, err)
	assert.Equal(t, fixture.LoadReport{Created: 2, Errors: 3}, report)

	var names []string
	require.NoError(t, db.Model(&entities.Ingredient{}).Order("id").Pluck("name_default", &names).Error)
	assert.Equal(t, []string{"Salz", "Pfeffer"}, names)

	var steps, recipes int64
	db.Model(&entities.RecipeStep{}).Count(&steps)
	db.Model(&entities.Recipe{}).Count(&recipes)
	assert.Zero(t, steps)
	assert.Zero(t, recipes)
}

func TestLoadReportAdd(t *testing.T) {
	total := fixture.LoadReport{Created: 1}
	total.Add(fixture.LoadReport{Created: 2, Skipped: 1, Errors: 1})
	assert.Equal(t, fixture.LoadReport{Created: 3, Skipped: 1, Errors: 1}, total)
}
