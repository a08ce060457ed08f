package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, page, limit int) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, slug string) (domain.RecipeDetail, error)
		GetRecentRecipes(ctx context.Context, since time.Time) ([]domain.FeedItem, error)
		GetSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error)

		AdminGetRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error)
		AdminGetRecipe(ctx context.Context, id uint) (*entities.Recipe, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id uint) error
		UploadRecipeImage(ctx context.Context, id uint, kind string, file *multipart.FileHeader) (domain.ImageUploadResponse, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository IngredientRepository
		unitRepository       UnitRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository IngredientRepository,
	unitRepository UnitRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		unitRepository:       unitRepository,
		s3:                   s3,
	}
}

// RecipePath is the site-relative URL of a recipe page.
func RecipePath(lang, slug string) string {
	return fmt.Sprintf("/%s/recipes/%s", lang, slug)
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int) (domain.RecipeListResponse, error) {
	page, limit = domain.NormalizePage(page, limit)
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, true, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	res := domain.RecipeListResponse{
		Recipes:    make([]domain.RecipeSummary, 0, len(recipes)),
		Pagination: domain.Pagination{Page: page, Limit: limit, Total: count},
	}
	for _, r := range recipes {
		res.Recipes = append(res.Recipes, s.summary(ctx, r))
	}
	return res, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, slug string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeBySlug(ctx, slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		RecipeSummary:       s.summary(ctx, recipe),
		PrepTime:            recipe.PrepTime,
		CookTime:            recipe.CookTime,
		IngredientsImageURL: s.s3.GetPublicLinkKey(recipe.IngredientsImage),
		PrepImageURL:        s.s3.GetPublicLinkKey(recipe.PrepImage),
		Ingredients:         make([]domain.RecipeIngredientLine, 0, len(recipe.Ingredients)),
		Steps:               make([]domain.RecipeStepLine, 0, len(recipe.Steps)),
		Alternates:          make(map[string]string, len(i18n.Languages())),
	}
	for i := range recipe.Ingredients {
		ri := &recipe.Ingredients[i]
		line := domain.RecipeIngredientLine{
			Label:      ri.Label(ctx),
			Unit:       ri.DisplayUnit(ctx),
			Ingredient: ri.DisplayIngredient(ctx),
		}
		if ri.Quantity != nil {
			line.Quantity = ri.Quantity.String()
		}
		detail.Ingredients = append(detail.Ingredients, line)
	}
	for _, step := range recipe.Steps {
		detail.Steps = append(detail.Steps, domain.RecipeStepLine{
			Number:      step.StepNumber,
			Instruction: step.LocalizedInstruction(ctx),
		})
	}
	for _, lang := range i18n.Languages() {
		detail.Alternates[lang] = RecipePath(lang, recipe.Slug.In(lang))
	}

	detail.JSONSchema, err = buildJSONSchema(ctx, recipe, detail)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return detail, nil
}

func (s *recipeService) summary(ctx context.Context, r *entities.Recipe) domain.RecipeSummary {
	slug := r.LocalizedSlug(ctx)
	return domain.RecipeSummary{
		ID:            r.ID,
		Title:         r.LocalizedTitle(ctx),
		Slug:          slug,
		URL:           RecipePath(i18n.FromContext(ctx), slug),
		Introduction:  r.LocalizedIntroduction(ctx),
		Category:      string(r.Category),
		Difficulty:    string(r.Difficulty),
		TotalTime:     r.TotalTime(),
		ImageURL:      s.s3.GetPublicLinkKey(r.MainImage),
		DatePublished: r.DatePublished,
	}
}

func (s *recipeService) GetRecentRecipes(ctx context.Context, since time.Time) ([]domain.FeedItem, error) {
	recipes, err := s.recipeRepository.GetRecentRecipes(ctx, since)
	if err != nil {
		return nil, err
	}

	lang := i18n.FromContext(ctx)
	items := make([]domain.FeedItem, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, domain.FeedItem{
			Title:       r.LocalizedTitle(ctx),
			Description: r.LocalizedIntroduction(ctx),
			Link:        RecipePath(lang, r.LocalizedSlug(ctx)),
			ImageURL:    s.s3.GetPublicLinkKey(r.MainImage),
			Created:     r.CreatedAt,
			Updated:     r.UpdatedAt,
		})
	}
	return items, nil
}

func (s *recipeService) GetSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error) {
	recipes, err := s.recipeRepository.GetPublishedRecipes(ctx)
	if err != nil {
		return nil, err
	}

	langs := i18n.Languages()
	entries := make([]domain.SitemapEntry, 0, len(recipes)*len(langs))
	for _, r := range recipes {
		alternates := make(map[string]string, len(langs))
		for _, lang := range langs {
			alternates[lang] = RecipePath(lang, r.Slug.In(lang))
		}
		for _, lang := range langs {
			entries = append(entries, domain.SitemapEntry{
				Path:         alternates[lang],
				LastModified: r.UpdatedAt,
				Alternates:   alternates,
			})
		}
	}
	return entries, nil
}

func (s *recipeService) AdminGetRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	page, limit = domain.NormalizePage(page, limit)
	return s.recipeRepository.GetRecipes(ctx, false, page, limit)
}

func (s *recipeService) AdminGetRecipe(ctx context.Context, id uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest) (*entities.Recipe, error) {
	recipe := &entities.Recipe{}
	if err := s.apply(ctx, recipe, req); err != nil {
		return nil, err
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	log.Infof("recipe %d created with slug %s", recipe.ID, recipe.SlugDefault)
	return s.AdminGetRecipe(ctx, recipe.ID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) (*entities.Recipe, error) {
	recipe, err := s.AdminGetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, recipe, req); err != nil {
		return nil, err
	}
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return s.AdminGetRecipe(ctx, id)
}

// apply copies req onto recipe after checking that every referenced
// ingredient and unit exists and that steps and ingredients are not repeated.
func (s *recipeService) apply(ctx context.Context, recipe *entities.Recipe, req domain.RecipeRequest) error {
	seenIngredients := make(map[uint]bool, len(req.Ingredients))
	links := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if seenIngredients[item.IngredientID] {
			return domain.ErrDuplicateIngredient
		}
		seenIngredients[item.IngredientID] = true

		if _, err := s.ingredientRepository.GetIngredientByID(ctx, item.IngredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotFound
			}
			return err
		}
		if item.UnitID != nil {
			if _, err := s.unitRepository.GetUnitByID(ctx, *item.UnitID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrUnitNotFound
				}
				return err
			}
		}
		links = append(links, entities.RecipeIngredient{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			UnitID:       item.UnitID,
			UnitText:     item.UnitText,
			Order:        item.Order,
		})
	}

	seenSteps := make(map[int]bool, len(req.Steps))
	steps := make([]entities.RecipeStep, 0, len(req.Steps))
	for _, step := range req.Steps {
		if seenSteps[step.StepNumber] {
			return domain.ErrDuplicateStepNumber
		}
		seenSteps[step.StepNumber] = true
		steps = append(steps, entities.RecipeStep{
			StepNumber:  step.StepNumber,
			Instruction: entities.LocalizedText(step.Instruction).Clone(),
		})
	}

	recipe.Title = entities.LocalizedText(req.Title).Clone()
	recipe.Introduction = entities.LocalizedText(req.Introduction).Clone()
	recipe.Difficulty = entities.RecipeDifficulty(req.Difficulty)
	recipe.Category = entities.RecipeCategory(req.Category)
	recipe.PrepTime = req.PrepTime
	recipe.CookTime = req.CookTime
	recipe.MainImage = req.MainImage
	recipe.IngredientsImage = req.IngredientsImage
	recipe.PrepImage = req.PrepImage
	recipe.IsPublished = req.IsPublished
	recipe.DatePublished = req.DatePublished
	recipe.Ingredients = links
	recipe.Steps = steps
	return nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint) error {
	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, id uint, kind string, file *multipart.FileHeader) (domain.ImageUploadResponse, error) {
	if file == nil {
		return domain.ImageUploadResponse{}, domain.ErrImageRequired
	}
	recipe, err := s.AdminGetRecipe(ctx, id)
	if err != nil {
		return domain.ImageUploadResponse{}, err
	}

	var field *string
	switch kind {
	case "main":
		field = &recipe.MainImage
	case "ingredients":
		field = &recipe.IngredientsImage
	case "prep":
		field = &recipe.PrepImage
	default:
		return domain.ImageUploadResponse{}, domain.ErrInvalidImageKind
	}

	objectKey, err := s.s3.UploadFile(uuid.NewString(), file, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.ImageUploadResponse{}, err
	}
	old := *field
	*field = objectKey
	if err := s.recipeRepository.SaveRecipe(ctx, recipe); err != nil {
		if delErr := s.s3.DeleteFile(objectKey); delErr != nil {
			log.Warnf("failed to clean up uploaded image %s: %v", objectKey, delErr)
		}
		return domain.ImageUploadResponse{}, err
	}
	if old != "" {
		if err := s.s3.DeleteFile(old); err != nil {
			log.Warnf("failed to delete replaced image %s: %v", old, err)
		}
	}
	return domain.ImageUploadResponse{Key: objectKey, URL: s.s3.GetPublicLinkKey(objectKey)}, nil
}
