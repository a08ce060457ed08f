// Package fixture loads content dumps of the previous site into the
// database, tolerating records that already exist.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"khadija-recipes/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnknownModel = errors.New("unsupported fixture model")

type outcome int

const (
	created outcome = iota
	updated
	skipped
)

type (
	// Record is one entry of a dump: {"model": ..., "pk": ..., "fields": {...}}.
	Record struct {
		Model  string                     `json:"model"`
		PK     uint                       `json:"pk"`
		Fields map[string]json.RawMessage `json:"fields"`
	}

	LoadReport struct {
		Created int
		Updated int
		Skipped int
		Errors  int
	}

	Loader interface {
		Load(ctx context.Context, records []Record, update bool) (LoadReport, error)
	}

	loader struct {
		db     *gorm.DB
		models map[string]modelLoader
	}

	modelLoader interface {
		load(tx *gorm.DB, rec Record, update bool) (outcome, uint, error)
	}

	// model binds a dump model name to an entity type.
	model[T any] struct {
		apply func(*T, fieldSet) error
		id    func(*T) *uint
		// unique returns a column and value identifying an existing row
		// when the pk does not match.
		unique func(fieldSet) (string, string)
	}
)

func NewLoader(db *gorm.DB) Loader {
	return &loader{db: db, models: registry()}
}

// LoadRecords decodes a dump file.
func LoadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *LoadReport) Add(other LoadReport) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Errors += other.Errors
}

// Load writes all records inside one transaction. Each record runs in its
// own savepoint; a failing record is rolled back, counted and logged.
func (l *loader) Load(ctx context.Context, records []Record, update bool) (LoadReport, error) {
	var report LoadReport

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				return err
			}

			var (
				result outcome
				pk     uint
			)
			err := tx.Transaction(func(sp *gorm.DB) error {
				m, ok := l.models[rec.Model]
				if !ok {
					return fmt.Errorf("%w: %s", ErrUnknownModel, rec.Model)
				}
				var err error
				result, pk, err = m.load(sp, rec, update)
				return err
			})
			if err != nil {
				report.Errors++
				log.Errorf("✗ Error %s: %v", rec.Model, err)
				continue
			}

			switch result {
			case created:
				report.Created++
				log.Infof("✓ Created %s PK:%d", rec.Model, pk)
			case updated:
				report.Updated++
				log.Infof("↻ Updated %s PK:%d", rec.Model, pk)
			case skipped:
				report.Skipped++
				log.Infof("⤳ Skipped %s PK:%d (exists)", rec.Model, pk)
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	if err := syncSequences(ctx, l.db); err != nil {
		log.Warnf("could not advance id sequences: %v", err)
	}

	log.Infof("Completed: %d created, %d updated, %d skipped, %d errors",
		report.Created, report.Updated, report.Skipped, report.Errors)
	return report, nil
}

func (m model[T]) find(tx *gorm.DB, rec Record) (*T, error) {
	var existing T
	if rec.PK != 0 {
		err := tx.First(&existing, rec.PK).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if m.unique == nil {
		return nil, nil
	}
	column, value := m.unique(fieldSet(rec.Fields))
	if value == "" {
		return nil, nil
	}
	err := tx.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (m model[T]) load(tx *gorm.DB, rec Record, update bool) (outcome, uint, error) {
	fields := fieldSet(rec.Fields)

	existing, err := m.find(tx, rec)
	if err != nil {
		return 0, 0, err
	}
	if existing != nil {
		pk := *m.id(existing)
		if !update {
			return skipped, pk, nil
		}
		if err := m.apply(existing, fields); err != nil {
			return 0, pk, err
		}
		if err := tx.Omit(clause.Associations).Save(existing).Error; err != nil {
			return 0, pk, err
		}
		return updated, pk, nil
	}

	obj := new(T)
	if err := m.apply(obj, fields); err != nil {
		return 0, rec.PK, err
	}
	if rec.PK != 0 {
		*m.id(obj) = rec.PK
	}
	if err := tx.Omit(clause.Associations).Create(obj).Error; err != nil {
		return 0, rec.PK, err
	}
	return created, *m.id(obj), nil
}

func registry() map[string]modelLoader {
	return map[string]modelLoader{
		"recipes.unit": model[entities.Unit]{
			apply: func(u *entities.Unit, f fieldSet) error {
				return firstErr(
					f.str("abbreviation", &u.Abbreviation),
					f.text("name", &u.Name),
					f.text("name_plural", &u.NamePlural),
				)
			},
			id:     func(u *entities.Unit) *uint { return &u.ID },
			unique: func(f fieldSet) (string, string) { return "name_default", f.defaultText("name") },
		},
		"recipes.ingredient": model[entities.Ingredient]{
			apply: func(i *entities.Ingredient, f fieldSet) error {
				return firstErr(
					f.text("name", &i.Name),
					f.text("name_plural", &i.NamePlural),
				)
			},
			id:     func(i *entities.Ingredient) *uint { return &i.ID },
			unique: func(f fieldSet) (string, string) { return "name_default", f.defaultText("name") },
		},
		"recipes.recipe": model[entities.Recipe]{
			apply: func(r *entities.Recipe, f fieldSet) error {
				return firstErr(
					f.text("title", &r.Title),
					f.text("slug", &r.Slug),
					f.text("introduction", &r.Introduction),
					f.decode("difficulty", &r.Difficulty),
					f.decode("category", &r.Category),
					f.decode("prep_time", &r.PrepTime),
					f.decode("cook_time", &r.CookTime),
					f.str("main_image", &r.MainImage),
					f.str("ingredients_image", &r.IngredientsImage),
					f.str("prep_image", &r.PrepImage),
					f.decode("is_published", &r.IsPublished),
					f.decode("date_published", &r.DatePublished),
				)
			},
			id: func(r *entities.Recipe) *uint { return &r.ID },
		},
		"recipes.recipestep": model[entities.RecipeStep]{
			apply: func(s *entities.RecipeStep, f fieldSet) error {
				return firstErr(
					f.decode("recipe", &s.RecipeID),
					f.decode("step_number", &s.StepNumber),
					f.text("instruction", &s.Instruction),
				)
			},
			id: func(s *entities.RecipeStep) *uint { return &s.ID },
		},
		"recipes.recipeingredient": model[entities.RecipeIngredient]{
			apply: func(ri *entities.RecipeIngredient, f fieldSet) error {
				return firstErr(
					f.decode("recipe", &ri.RecipeID),
					f.decode("ingredient", &ri.IngredientID),
					f.decode("quantity", &ri.Quantity),
					f.decode("unit", &ri.UnitID),
					f.str("unit_text", &ri.UnitText),
					f.decode("order", &ri.Order),
				)
			},
			id: func(ri *entities.RecipeIngredient) *uint { return &ri.ID },
		},
		"products.product": model[entities.Product]{
			apply: func(p *entities.Product, f fieldSet) error {
				return firstErr(
					f.text("title", &p.Title),
					f.text("slug", &p.Slug),
					f.text("description", &p.Description),
					f.decode("total_fat", &p.TotalFat),
					f.decode("saturated_fat", &p.SaturatedFat),
					f.decode("total_carbo", &p.TotalCarbo),
					f.decode("sugar", &p.Sugar),
					f.decode("protein", &p.Protein),
					f.decode("salt", &p.Salt),
					f.decode("price", &p.Price),
				)
			},
			id: func(p *entities.Product) *uint { return &p.ID },
		},
		"products.productimage": model[entities.ProductImage]{
			apply: func(img *entities.ProductImage, f fieldSet) error {
				return firstErr(
					f.decode("product", &img.ProductID),
					f.str("image", &img.Image),
					f.text("alt_img", &img.Alt),
				)
			},
			id: func(img *entities.ProductImage) *uint { return &img.ID },
		},
		"core.faq": model[entities.Faq]{
			apply: func(q *entities.Faq, f fieldSet) error {
				if _, ok := f["is_active"]; !ok && q.ID == 0 {
					q.IsActive = true
				}
				return firstErr(
					f.text("question", &q.Question),
					f.text("answer", &q.Answer),
					f.decode("is_active", &q.IsActive),
				)
			},
			id: func(q *entities.Faq) *uint { return &q.ID },
		},
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
