package legacy

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"khadija-recipes/entities"
	"khadija-recipes/internal/utils/slug"
	"khadija-recipes/pkg/recipe"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const maxIngredientName = 100

var (
	// sectionHeadings are generic body headings that never name a recipe.
	sectionHeadings = map[string]bool{
		"zutaten":     true,
		"ingredients": true,
		"ingrédients": true,
		"zubereitung": true,
		"preparation": true,
		"préparation": true,
	}

	rejectedTitles = map[string]bool{
		"zutaten":     true,
		"ingredients": true,
		"ingrédients": true,
	}

	// CommonUnits are created by EnsureUnits, in matching priority order.
	CommonUnits = []struct{ Name, Abbreviation string }{
		{"gram", "g"},
		{"kilogram", "kg"},
		{"milliliter", "ml"},
		{"liter", "l"},
		{"teaspoon", "tsp"},
		{"tablespoon", "tbsp"},
		{"cup", "cup"},
		{"piece", "pc"},
		{"pinch", "pinch"},
		{"bunch", "bunch"},
		{"clove", "clove"},
	}

	dateLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

type (
	Importer interface {
		EnsureUnits(ctx context.Context) (UnitRegistry, error)
		Import(ctx context.Context, record Record, units UnitRegistry) (*entities.Recipe, error)
		ImportAll(ctx context.Context, records []Record, dryRun bool) (ImportReport, error)
	}

	importer struct {
		db *gorm.DB
	}

	ImportReport struct {
		Imported int
		Skipped  int
		Failed   int
	}

	// UnitRegistry holds the known units in matching priority order.
	UnitRegistry []*entities.Unit
)

func NewImporter(db *gorm.DB) Importer {
	return &importer{db: db}
}

// Match returns the first unit, in registry order, whose name or
// abbreviation occurs inside text.
func (r UnitRegistry) Match(text string) *entities.Unit {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	for _, u := range r {
		name := strings.ToLower(u.Name.Default())
		abbr := strings.ToLower(u.Abbreviation)
		if (name != "" && strings.Contains(text, name)) || (abbr != "" && strings.Contains(text, abbr)) {
			return u
		}
	}
	return nil
}

// RecipeTitle picks the subtitle, else the first body heading that is not
// a generic section name, else "Recipe <pk>".
func RecipeTitle(record Record) string {
	if s := strings.TrimSpace(record.Fields.Subtitle); s != "" {
		return s
	}

	blocks, err := record.Blocks()
	if err != nil {
		log.Warnf("record %d: unreadable body: %v", record.PK, err)
	}
	for _, block := range blocks {
		if block.Type != "paragraph_block" {
			continue
		}
		for _, h := range headings(block.HTML()) {
			if h != "" && !sectionHeadings[strings.ToLower(h)] {
				return h
			}
		}
	}
	return fmt.Sprintf("Recipe %d", record.PK)
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date_published %q", value)
}

func (i *importer) EnsureUnits(ctx context.Context) (UnitRegistry, error) {
	units := recipe.NewUnitRepository(i.db)
	registry := make(UnitRegistry, 0, len(CommonUnits))
	for _, cu := range CommonUnits {
		unit, created, err := units.GetOrCreateUnit(ctx, cu.Name, cu.Abbreviation)
		if err != nil {
			return nil, err
		}
		if created {
			log.Infof("created unit %s (%s)", cu.Name, cu.Abbreviation)
		}
		registry = append(registry, unit)
	}
	return registry, nil
}

// Import turns one legacy page into a recipe with its ingredients and
// steps. A nil recipe with a nil error means the record was skipped. Each
// record is written in its own transaction.
func (i *importer) Import(ctx context.Context, record Record, units UnitRegistry) (*entities.Recipe, error) {
	title := RecipeTitle(record)
	if title == "" || rejectedTitles[strings.ToLower(title)] {
		return nil, nil
	}
	published, err := parseDate(record.Fields.DatePublished)
	if err != nil {
		return nil, err
	}

	var result *entities.Recipe
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipes := recipe.NewRecipeRepository(tx)
		ingredients := recipe.NewIngredientRepository(tx)

		// Recipe.BeforeSave suffixes colliding slugs; this only covers
		// titles that slugify to nothing.
		base := slug.Make(title)
		if base == "" {
			base = fmt.Sprintf("recipe-%d", record.PK)
		}

		legacyID := record.PK
		r := &entities.Recipe{
			Title:         entities.Text(title),
			Slug:          entities.Text(base),
			Introduction:  entities.Text(record.Fields.Introduction),
			DatePublished: published,
			IsPublished:   published != nil,
			LegacyID:      &legacyID,
		}
		if err := recipes.CreateRecipe(ctx, r); err != nil {
			return err
		}

		blocks, err := record.Blocks()
		if err != nil {
			log.Warnf("record %d: body skipped: %v", record.PK, err)
			result = r
			return nil
		}

		var ingredientCount, stepCount int
		for _, block := range blocks {
			if block.Type != "paragraph_block" {
				continue
			}
			content := block.HTML()

			for order, line := range ExtractIngredients(content) {
				added, err := importIngredient(ctx, recipes, ingredients, r, line, order, units)
				if err != nil {
					return err
				}
				if added {
					ingredientCount++
				}
			}
			for n, text := range ExtractSteps(content) {
				added, err := importStep(ctx, recipes, r, text, n+1)
				if err != nil {
					return err
				}
				if added {
					stepCount++
				}
			}
		}
		if ingredientCount > 0 || stepCount > 0 {
			log.Infof("record %d: %d ingredients, %d steps", record.PK, ingredientCount, stepCount)
		}

		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func importIngredient(
	ctx context.Context,
	recipes recipe.RecipeRepository,
	ingredients recipe.IngredientRepository,
	r *entities.Recipe,
	line string,
	order int,
	units UnitRegistry,
) (bool, error) {
	parsed := ParseIngredientLine(line)
	if utf8.RuneCountInString(parsed.Name) < 2 {
		return false, nil
	}

	name := titleCase(parsed.Name)
	if utf8.RuneCountInString(name) > maxIngredientName {
		name = strings.TrimSpace(string([]rune(name)[:maxIngredientName]))
	}
	ingredient, _, err := ingredients.GetOrCreateIngredient(ctx, name)
	if err != nil {
		return false, err
	}

	linked, err := recipes.HasIngredient(ctx, r.ID, ingredient.ID)
	if err != nil {
		return false, err
	}
	if linked {
		return false, nil
	}

	link := &entities.RecipeIngredient{
		RecipeID:     r.ID,
		IngredientID: ingredient.ID,
		Quantity:     parsed.Amount(),
		Order:        order,
	}
	if parsed.Unit != "" {
		if unit := units.Match(parsed.Unit); unit != nil {
			link.UnitID = &unit.ID
		} else {
			link.UnitText = parsed.Unit
		}
	}
	if err := recipes.AddIngredient(ctx, link); err != nil {
		return false, err
	}
	return true, nil
}

func importStep(ctx context.Context, recipes recipe.RecipeRepository, r *entities.Recipe, text string, number int) (bool, error) {
	if utf8.RuneCountInString(text) < 5 {
		return false, nil
	}

	exists, err := recipes.StepNumberExists(ctx, r.ID, number)
	if err != nil {
		return false, err
	}
	if exists {
		highest, err := recipes.MaxStepNumber(ctx, r.ID)
		if err != nil {
			return false, err
		}
		number = highest + 1
	}

	step := &entities.RecipeStep{
		RecipeID:    r.ID,
		StepNumber:  number,
		Instruction: entities.Text(text),
	}
	if err := recipes.AddStep(ctx, step); err != nil {
		return false, err
	}
	return true, nil
}

// ImportAll imports every blog page of an export. A failing record is
// logged and counted and does not stop the batch. In dry-run mode nothing
// is written and only the derived titles are logged.
func (i *importer) ImportAll(ctx context.Context, records []Record, dryRun bool) (ImportReport, error) {
	var report ImportReport

	var units UnitRegistry
	if !dryRun {
		var err error
		if units, err = i.EnsureUnits(ctx); err != nil {
			return report, err
		}
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if record.Model != PageModel {
			continue
		}
		if dryRun {
			log.Infof("Would import: %s", RecipeTitle(record))
			continue
		}

		r, err := i.Import(ctx, record, units)
		switch {
		case err != nil:
			log.Errorw("failed to import legacy record", "pk", record.PK, "error", err)
			report.Failed++
		case r == nil:
			log.Infof("skipped record %d", record.PK)
			report.Skipped++
		default:
			log.Infof("imported %s", r.Title.Default())
			report.Imported++
		}
	}

	log.Infof("import complete: %d imported, %d skipped, %d failed", report.Imported, report.Skipped, report.Failed)
	return report, nil
}
