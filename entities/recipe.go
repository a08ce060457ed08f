package entities

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecipeDifficulty string

const (
	DifficultyEasy   RecipeDifficulty = "easy"
	DifficultyMedium RecipeDifficulty = "medium"
	DifficultyHard   RecipeDifficulty = "hard"
)

type RecipeCategory string

const (
	CategoryAppetizer RecipeCategory = "appetizer"
	CategoryMain      RecipeCategory = "main"
	CategoryDessert   RecipeCategory = "dessert"
	CategorySnack     RecipeCategory = "snack"
	CategoryBeverage  RecipeCategory = "beverage"
	CategoryBread     RecipeCategory = "bread"
)

// Unit is a measurement unit shared by recipe ingredients.
type Unit struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Abbreviation string        `gorm:"size:10" json:"abbreviation"`
	Name         LocalizedText `gorm:"not null" json:"name"`
	NamePlural   LocalizedText `gorm:"not null" json:"name_plural"`
	NameDefault  string        `gorm:"size:50;uniqueIndex;not null" json:"-"`

	Timestamp
}

func (u *Unit) BeforeSave(tx *gorm.DB) error {
	u.NameDefault = u.Name.Default()
	return nil
}

// LocalizedName returns the unit name in the active language.
func (u *Unit) LocalizedName(ctx context.Context) string {
	return u.Name.Resolve(ctx)
}

// LocalizedNamePlural falls back to the singular when no plural is stored.
func (u *Unit) LocalizedNamePlural(ctx context.Context) string {
	if p := u.NamePlural.Resolve(ctx); p != "" {
		return p
	}
	return u.LocalizedName(ctx)
}

// Ingredient is reused across recipes and referenced, not owned, by them.
type Ingredient struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        LocalizedText `gorm:"not null" json:"name"`
	NamePlural  LocalizedText `gorm:"not null" json:"name_plural"`
	NameDefault string        `gorm:"size:100;uniqueIndex;not null" json:"-"`

	Timestamp
}

func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	i.NameDefault = i.Name.Default()
	return nil
}

func (i *Ingredient) LocalizedName(ctx context.Context) string {
	return i.Name.Resolve(ctx)
}

func (i *Ingredient) LocalizedNamePlural(ctx context.Context) string {
	if p := i.NamePlural.Resolve(ctx); p != "" {
		return p
	}
	return i.LocalizedName(ctx)
}

type Recipe struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        LocalizedText    `gorm:"not null" json:"title"`
	Slug         LocalizedText    `gorm:"not null" json:"slug"`
	SlugDefault  string           `gorm:"size:256;index;not null" json:"-"`
	Introduction LocalizedText    `gorm:"not null" json:"introduction"`
	Difficulty   RecipeDifficulty `gorm:"size:10;not null;default:medium" json:"difficulty"`
	Category     RecipeCategory   `gorm:"size:20;not null;default:main" json:"category"`

	// minutes
	PrepTime *int `json:"prep_time,omitempty"`
	CookTime *int `json:"cook_time,omitempty"`

	MainImage        string `gorm:"size:512" json:"main_image,omitempty"`
	IngredientsImage string `gorm:"size:512" json:"ingredients_image,omitempty"`
	PrepImage        string `gorm:"size:512" json:"prep_image,omitempty"`

	IsPublished   bool       `gorm:"not null;default:false" json:"is_published"`
	DatePublished *time.Time `json:"date_published,omitempty"`
	LegacyID      *uint      `gorm:"index" json:"legacy_id,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Steps       []RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`

	Timestamp
}

func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.Category == "" {
		r.Category = CategoryMain
	}
	return normalizePage(tx, &Recipe{}, r.ID, r.Title, &r.Slug, &r.SlugDefault)
}

func (r *Recipe) LocalizedTitle(ctx context.Context) string {
	return r.Title.Resolve(ctx)
}

func (r *Recipe) LocalizedSlug(ctx context.Context) string {
	return r.Slug.Resolve(ctx)
}

func (r *Recipe) LocalizedIntroduction(ctx context.Context) string {
	return r.Introduction.Resolve(ctx)
}

// TotalTime is preparation plus cooking time, nil when both are unset or zero.
func (r *Recipe) TotalTime() *int {
	total := 0
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookTime != nil {
		total += *r.CookTime
	}
	if total <= 0 {
		return nil
	}
	return &total
}

type RecipeIngredient struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	RecipeID     uint             `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint             `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Quantity     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity,omitempty"`
	UnitID       *uint            `json:"unit_id,omitempty"`
	UnitText     string           `gorm:"size:50" json:"unit_text,omitempty"`
	Order        int              `gorm:"column:sort_order;not null;default:0" json:"order"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	Unit       *Unit       `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL" json:"unit,omitempty"`

	Timestamp
}

func (ri *RecipeIngredient) plural() bool {
	return ri.Quantity != nil && !ri.Quantity.IsZero() && !ri.Quantity.Equal(decimal.NewFromInt(1))
}

// DisplayUnit returns the localized singular or plural unit name, falling
// back to the free-text unit when no unit is linked.
func (ri *RecipeIngredient) DisplayUnit(ctx context.Context) string {
	if ri.Unit == nil {
		return ri.UnitText
	}
	if ri.plural() {
		return ri.Unit.LocalizedNamePlural(ctx)
	}
	return ri.Unit.LocalizedName(ctx)
}

// DisplayIngredient returns the localized singular or plural ingredient name.
func (ri *RecipeIngredient) DisplayIngredient(ctx context.Context) string {
	if ri.Ingredient == nil {
		return ""
	}
	if ri.plural() {
		return ri.Ingredient.LocalizedNamePlural(ctx)
	}
	return ri.Ingredient.LocalizedName(ctx)
}

// Label renders the line as read on the page, e.g. "200 g Mehl".
func (ri *RecipeIngredient) Label(ctx context.Context) string {
	parts := make([]string, 0, 3)
	if ri.Quantity != nil {
		parts = append(parts, strings.TrimSuffix(ri.Quantity.StringFixed(2), ".00"))
	}
	switch {
	case ri.Unit != nil && ri.Unit.Abbreviation != "":
		parts = append(parts, ri.Unit.Abbreviation)
	default:
		if u := ri.DisplayUnit(ctx); u != "" {
			parts = append(parts, u)
		}
	}
	parts = append(parts, ri.DisplayIngredient(ctx))
	return strings.Join(parts, " ")
}

type RecipeStep struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	RecipeID    uint          `gorm:"not null;uniqueIndex:idx_recipe_step" json:"recipe_id"`
	StepNumber  int           `gorm:"not null;uniqueIndex:idx_recipe_step" json:"step_number"`
	Instruction LocalizedText `gorm:"not null" json:"instruction"`

	Timestamp
}

func (s *RecipeStep) LocalizedInstruction(ctx context.Context) string {
	return s.Instruction.Resolve(ctx)
}
