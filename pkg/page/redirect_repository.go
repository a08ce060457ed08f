package page

import (
	"context"

	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	RedirectRepository interface {
		CreateRedirect(ctx context.Context, redirect *entities.Redirect) error
		UpdateRedirect(ctx context.Context, redirect *entities.Redirect) error
		DeleteRedirect(ctx context.Context, id uint) error
		GetRedirectByID(ctx context.Context, id uint) (*entities.Redirect, error)
		GetRedirectByOldPath(ctx context.Context, oldPath string) (*entities.Redirect, error)
		GetRedirects(ctx context.Context) ([]*entities.Redirect, error)
	}

	redirectRepository struct {
		db *gorm.DB
	}
)

func NewRedirectRepository(db *gorm.DB) RedirectRepository {
	return &redirectRepository{db: db}
}

func (r *redirectRepository) CreateRedirect(ctx context.Context, redirect *entities.Redirect) error {
	return r.db.WithContext(ctx).Create(redirect).Error
}

func (r *redirectRepository) UpdateRedirect(ctx context.Context, redirect *entities.Redirect) error {
	return r.db.WithContext(ctx).Save(redirect).Error
}

func (r *redirectRepository) DeleteRedirect(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Redirect{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *redirectRepository) GetRedirectByID(ctx context.Context, id uint) (*entities.Redirect, error) {
	var redirect entities.Redirect
	if err := r.db.WithContext(ctx).First(&redirect, id).Error; err != nil {
		return nil, err
	}
	return &redirect, nil
}

func (r *redirectRepository) GetRedirectByOldPath(ctx context.Context, oldPath string) (*entities.Redirect, error) {
	var redirect entities.Redirect
	if err := r.db.WithContext(ctx).Where("old_path = ?", oldPath).First(&redirect).Error; err != nil {
		return nil, err
	}
	return &redirect, nil
}

func (r *redirectRepository) GetRedirects(ctx context.Context) ([]*entities.Redirect, error) {
	var redirects []*entities.Redirect
	err := r.db.WithContext(ctx).Order("old_path asc").Find(&redirects).Error
	return redirects, err
}
