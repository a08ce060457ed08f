package recipe

import (
	"context"
	"errors"

	"khadija-recipes/domain"
	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	// CatalogService manages the ingredients and units shared by recipes.
	CatalogService interface {
		GetIngredients(ctx context.Context) ([]domain.Ingredient, error)
		CreateIngredient(ctx context.Context, req domain.IngredientRequest) (*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, id uint, req domain.IngredientRequest) (*entities.Ingredient, error)
		DeleteIngredient(ctx context.Context, id uint) error

		GetUnits(ctx context.Context) ([]domain.Unit, error)
		CreateUnit(ctx context.Context, req domain.UnitRequest) (*entities.Unit, error)
		UpdateUnit(ctx context.Context, id uint, req domain.UnitRequest) (*entities.Unit, error)
		DeleteUnit(ctx context.Context, id uint) error
	}

	catalogService struct {
		ingredientRepository IngredientRepository
		unitRepository       UnitRepository
	}
)

func NewCatalogService(ingredientRepository IngredientRepository, unitRepository UnitRepository) CatalogService {
	return &catalogService{
		ingredientRepository: ingredientRepository,
		unitRepository:       unitRepository,
	}
}

func (s *catalogService) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, domain.Ingredient{
			ID:         i.ID,
			Name:       i.LocalizedName(ctx),
			NamePlural: i.LocalizedNamePlural(ctx),
		})
	}
	return res, nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, req domain.IngredientRequest) (*entities.Ingredient, error) {
	ingredient := &entities.Ingredient{
		Name:       entities.LocalizedText(req.Name).Clone(),
		NamePlural: entities.LocalizedText(req.NamePlural).Clone(),
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *catalogService) UpdateIngredient(ctx context.Context, id uint, req domain.IngredientRequest) (*entities.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	ingredient.Name = entities.LocalizedText(req.Name).Clone()
	ingredient.NamePlural = entities.LocalizedText(req.NamePlural).Clone()
	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *catalogService) DeleteIngredient(ctx context.Context, id uint) error {
	if err := s.ingredientRepository.DeleteIngredient(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetUnits(ctx context.Context) ([]domain.Unit, error) {
	units, err := s.unitRepository.GetUnits(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		res = append(res, domain.Unit{
			ID:           u.ID,
			Abbreviation: u.Abbreviation,
			Name:         u.LocalizedName(ctx),
			NamePlural:   u.LocalizedNamePlural(ctx),
		})
	}
	return res, nil
}

func (s *catalogService) CreateUnit(ctx context.Context, req domain.UnitRequest) (*entities.Unit, error) {
	unit := &entities.Unit{
		Abbreviation: req.Abbreviation,
		Name:         entities.LocalizedText(req.Name).Clone(),
		NamePlural:   entities.LocalizedText(req.NamePlural).Clone(),
	}
	if err := s.unitRepository.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *catalogService) UpdateUnit(ctx context.Context, id uint, req domain.UnitRequest) (*entities.Unit, error) {
	unit, err := s.unitRepository.GetUnitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, err
	}
	unit.Abbreviation = req.Abbreviation
	unit.Name = entities.LocalizedText(req.Name).Clone()
	unit.NamePlural = entities.LocalizedText(req.NamePlural).Clone()
	if err := s.unitRepository.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *catalogService) DeleteUnit(ctx context.Context, id uint) error {
	if err := s.unitRepository.DeleteUnit(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnitNotFound
		}
		return err
	}
	return nil
}
