package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessCreateIngredient = "ingredient created successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageFailedGetIngredients    = "failed to get ingredients"
	MessageFailedSaveIngredient    = "failed to save ingredient"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"

	MessageSuccessGetUnits   = "success get units"
	MessageSuccessCreateUnit = "unit created successfully"
	MessageSuccessUpdateUnit = "unit updated successfully"
	MessageSuccessDeleteUnit = "unit deleted successfully"
	MessageFailedGetUnits    = "failed to get units"
	MessageFailedSaveUnit    = "failed to save unit"
	MessageFailedDeleteUnit  = "failed to delete unit"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrDuplicateStepNumber = errors.New("step number used twice in recipe")
	ErrDuplicateIngredient = errors.New("ingredient listed twice in recipe")
	ErrInvalidImageKind    = errors.New("image kind must be main, ingredients or prep")
)

type (
	RecipeRequest struct {
		Title            map[string]string         `json:"title" validate:"required,default_lang"`
		Introduction     map[string]string         `json:"introduction" validate:"required,default_lang"`
		Difficulty       string                    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		Category         string                    `json:"category" validate:"omitempty,oneof=appetizer main dessert snack beverage bread"`
		PrepTime         *int                      `json:"prep_time" validate:"omitempty,gte=0"`
		CookTime         *int                      `json:"cook_time" validate:"omitempty,gte=0"`
		MainImage        string                    `json:"main_image" validate:"max=512"`
		IngredientsImage string                    `json:"ingredients_image" validate:"max=512"`
		PrepImage        string                    `json:"prep_image" validate:"max=512"`
		IsPublished      bool                      `json:"is_published"`
		DatePublished    *time.Time                `json:"date_published"`
		Ingredients      []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
		Steps            []RecipeStepRequest       `json:"steps" validate:"dive"`
	}

	RecipeIngredientRequest struct {
		IngredientID uint             `json:"ingredient_id" validate:"required"`
		Quantity     *decimal.Decimal `json:"quantity"`
		UnitID       *uint            `json:"unit_id"`
		UnitText     string           `json:"unit_text" validate:"max=50"`
		Order        int              `json:"order" validate:"gte=0"`
	}

	RecipeStepRequest struct {
		StepNumber  int               `json:"step_number" validate:"required,gte=1"`
		Instruction map[string]string `json:"instruction" validate:"required,default_lang"`
	}

	IngredientRequest struct {
		Name       map[string]string `json:"name" validate:"required,default_lang"`
		NamePlural map[string]string `json:"name_plural"`
	}

	UnitRequest struct {
		Abbreviation string            `json:"abbreviation" validate:"max=10"`
		Name         map[string]string `json:"name" validate:"required,default_lang"`
		NamePlural   map[string]string `json:"name_plural"`
	}

	RecipeSummary struct {
		ID            uint       `json:"id"`
		Title         string     `json:"title"`
		Slug          string     `json:"slug"`
		URL           string     `json:"url"`
		Introduction  string     `json:"introduction"`
		Category      string     `json:"category"`
		Difficulty    string     `json:"difficulty"`
		TotalTime     *int       `json:"total_time,omitempty"`
		ImageURL      string     `json:"image_url,omitempty"`
		DatePublished *time.Time `json:"date_published,omitempty"`
	}

	RecipeDetail struct {
		RecipeSummary
		PrepTime            *int                   `json:"prep_time,omitempty"`
		CookTime            *int                   `json:"cook_time,omitempty"`
		IngredientsImageURL string                 `json:"ingredients_image_url,omitempty"`
		PrepImageURL        string                 `json:"prep_image_url,omitempty"`
		Ingredients         []RecipeIngredientLine `json:"ingredients"`
		Steps               []RecipeStepLine       `json:"steps"`
		Alternates          map[string]string      `json:"alternates"`
		JSONSchema          json.RawMessage        `json:"json_schema"`
	}

	RecipeIngredientLine struct {
		Label      string `json:"label"`
		Quantity   string `json:"quantity,omitempty"`
		Unit       string `json:"unit,omitempty"`
		Ingredient string `json:"ingredient"`
	}

	RecipeStepLine struct {
		Number      int    `json:"number"`
		Instruction string `json:"instruction"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeSummary `json:"recipes"`
		Pagination Pagination      `json:"pagination"`
	}

	Ingredient struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		NamePlural string `json:"name_plural"`
	}

	Unit struct {
		ID           uint   `json:"id"`
		Abbreviation string `json:"abbreviation"`
		Name         string `json:"name"`
		NamePlural   string `json:"name_plural"`
	}
)
