package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
)

type (
	recipeSchema struct {
		Context        string          `json:"@context"`
		Type           string          `json:"@type"`
		Name           string          `json:"name"`
		Description    string          `json:"description,omitempty"`
		InLanguage     string          `json:"inLanguage"`
		Image          []string        `json:"image,omitempty"`
		DatePublished  string          `json:"datePublished,omitempty"`
		PrepTime       string          `json:"prepTime,omitempty"`
		CookTime       string          `json:"cookTime,omitempty"`
		TotalTime      string          `json:"totalTime,omitempty"`
		RecipeCategory string          `json:"recipeCategory,omitempty"`
		Ingredients    []string        `json:"recipeIngredient"`
		Instructions   []howToStepItem `json:"recipeInstructions"`
	}

	howToStepItem struct {
		Type     string `json:"@type"`
		Position int    `json:"position"`
		Text     string `json:"text"`
	}
)

// isoMinutes renders minutes as an ISO 8601 duration.
func isoMinutes(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("PT%dM", *minutes)
}

// buildJSONSchema renders the schema.org Recipe object embedded in detail
// pages.
func buildJSONSchema(ctx context.Context, recipe *entities.Recipe, detail domain.RecipeDetail) (json.RawMessage, error) {
	schema := recipeSchema{
		Context:        "https://schema.org",
		Type:           "Recipe",
		Name:           detail.Title,
		Description:    detail.Introduction,
		InLanguage:     i18n.FromContext(ctx),
		PrepTime:       isoMinutes(recipe.PrepTime),
		CookTime:       isoMinutes(recipe.CookTime),
		TotalTime:      isoMinutes(recipe.TotalTime()),
		RecipeCategory: string(recipe.Category),
		Ingredients:    make([]string, 0, len(detail.Ingredients)),
		Instructions:   make([]howToStepItem, 0, len(detail.Steps)),
	}
	for _, img := range []string{detail.ImageURL, detail.IngredientsImageURL, detail.PrepImageURL} {
		if img != "" {
			schema.Image = append(schema.Image, img)
		}
	}
	if recipe.DatePublished != nil {
		schema.DatePublished = recipe.DatePublished.Format("2006-01-02")
	}
	for _, line := range detail.Ingredients {
		schema.Ingredients = append(schema.Ingredients, line.Label)
	}
	for i, step := range detail.Steps {
		schema.Instructions = append(schema.Instructions, howToStepItem{
			Type:     "HowToStep",
			Position: i + 1,
			Text:     step.Instruction,
		})
	}
	return json.Marshal(schema)
}
