package recipe

import (
	"context"
	"errors"

	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	UnitRepository interface {
		CreateUnit(ctx context.Context, unit *entities.Unit) error
		UpdateUnit(ctx context.Context, unit *entities.Unit) error
		DeleteUnit(ctx context.Context, id uint) error
		GetUnitByID(ctx context.Context, id uint) (*entities.Unit, error)
		GetUnits(ctx context.Context) ([]*entities.Unit, error)
		GetOrCreateUnit(ctx context.Context, name, abbreviation string) (*entities.Unit, bool, error)
	}

	unitRepository struct {
		db *gorm.DB
	}
)

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) CreateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) UpdateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) DeleteUnit(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Unit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *unitRepository) GetUnitByID(ctx context.Context, id uint) (*entities.Unit, error) {
	var unit entities.Unit
	if err := r.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) GetUnits(ctx context.Context) ([]*entities.Unit, error) {
	var units []*entities.Unit
	err := r.db.WithContext(ctx).Order("name_default asc").Find(&units).Error
	return units, err
}

func (r *unitRepository) GetOrCreateUnit(ctx context.Context, name, abbreviation string) (*entities.Unit, bool, error) {
	var unit entities.Unit
	err := r.db.WithContext(ctx).Where("name_default = ?", name).First(&unit).Error
	if err == nil {
		return &unit, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	unit = entities.Unit{Name: entities.Text(name), Abbreviation: abbreviation}
	if err := r.db.WithContext(ctx).Create(&unit).Error; err != nil {
		return nil, false, err
	}
	return &unit, true, nil
}
