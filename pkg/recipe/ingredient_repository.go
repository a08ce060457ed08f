package recipe

import (
	"context"
	"errors"

	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id uint) error
		GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, bool, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Ingredient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	err := r.db.WithContext(ctx).Order("name_default asc").Find(&ingredients).Error
	return ingredients, err
}

// GetOrCreateIngredient looks the ingredient up by its default-language
// name and creates it when missing. The bool reports whether it was created.
func (r *ingredientRepository) GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, bool, error) {
	var ingredient entities.Ingredient
	err := r.db.WithContext(ctx).Where("name_default = ?", name).First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	ingredient = entities.Ingredient{Name: entities.Text(name)}
	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, false, err
	}
	return &ingredient, true, nil
}
