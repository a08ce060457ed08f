package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"khadija-recipes/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		SaveRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id uint) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipeBySlug(ctx context.Context, slug string, publishedOnly bool) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, publishedOnly bool, page, limit int) ([]*entities.Recipe, int64, error)
		GetPublishedRecipes(ctx context.Context) ([]*entities.Recipe, error)
		GetRecentRecipes(ctx context.Context, since time.Time) ([]*entities.Recipe, error)
		AddIngredient(ctx context.Context, link *entities.RecipeIngredient) error
		HasIngredient(ctx context.Context, recipeID, ingredientID uint) (bool, error)
		AddStep(ctx context.Context, step *entities.RecipeStep) error
		StepNumberExists(ctx context.Context, recipeID uint, number int) (bool, error)
		MaxStepNumber(ctx context.Context, recipeID uint) (int, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Unit").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number asc")
		})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// UpdateRecipe saves the recipe row and replaces its steps and ingredient
// links with the ones carried by recipe.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeStep{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			link := &recipe.Ingredients[i]
			link.ID = 0
			link.RecipeID = recipe.ID
			if err := tx.Omit(clause.Associations).Create(link).Error; err != nil {
				return err
			}
		}
		for i := range recipe.Steps {
			step := &recipe.Steps[i]
			step.ID = 0
			step.RecipeID = recipe.ID
			if err := tx.Create(step).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveRecipe writes the recipe row only, leaving steps and links alone.
func (r *recipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Recipe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetails(r.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeBySlug matches slug against every language. A default-language
// match wins over a translated one.
func (r *recipeRepository) GetRecipeBySlug(ctx context.Context, slug string, publishedOnly bool) (*entities.Recipe, error) {
	pattern, err := slugPattern(slug)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Select("id", "slug", "slug_default").
		Where("slug_default = ? OR slug LIKE ?", slug, pattern)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var candidates []entities.Recipe
	if err := query.Order("id asc").Find(&candidates).Error; err != nil {
		return nil, err
	}

	var id uint
	for _, c := range candidates {
		if c.SlugDefault == slug {
			id = c.ID
			break
		}
		if id == 0 && c.Slug.Has(slug) {
			id = c.ID
		}
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetRecipeByID(ctx, id)
}

func slugPattern(slug string) (string, error) {
	quoted, err := json.Marshal(slug)
	if err != nil {
		return "", err
	}
	return "%" + string(quoted) + "%", nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, publishedOnly bool, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	query = query.Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at desc, id desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetPublishedRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at desc, id desc").
		Find(&recipes).Error
	return recipes, err
}

// GetRecentRecipes returns published recipes with a main image created
// after since, newest first.
func (r *recipeRepository) GetRecentRecipes(ctx context.Context, since time.Time) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Where("main_image <> ''").
		Where("created_at >= ?", since).
		Order("created_at desc, id desc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) AddIngredient(ctx context.Context, link *entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (r *recipeRepository) HasIngredient(ctx context.Context, recipeID, ingredientID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) AddStep(ctx context.Context, step *entities.RecipeStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *recipeRepository) StepNumberExists(ctx context.Context, recipeID uint, number int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.RecipeStep{}).
		Where("recipe_id = ? AND step_number = ?", recipeID, number).
		Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) MaxStepNumber(ctx context.Context, recipeID uint) (int, error) {
	var highest sql.NullInt64
	row := r.db.WithContext(ctx).
		Model(&entities.RecipeStep{}).
		Where("recipe_id = ?", recipeID).
		Select("MAX(step_number)").
		Row()
	if err := row.Scan(&highest); err != nil {
		return 0, err
	}
	return int(highest.Int64), nil
}
