package page

import (
	"context"

	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	FaqRepository interface {
		CreateFaq(ctx context.Context, faq *entities.Faq) error
		UpdateFaq(ctx context.Context, faq *entities.Faq) error
		DeleteFaq(ctx context.Context, id uint) error
		GetFaqByID(ctx context.Context, id uint) (*entities.Faq, error)
		GetFaqs(ctx context.Context) ([]*entities.Faq, error)
		GetActiveFaqs(ctx context.Context) ([]*entities.Faq, error)
	}

	faqRepository struct {
		db *gorm.DB
	}
)

func NewFaqRepository(db *gorm.DB) FaqRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) CreateFaq(ctx context.Context, faq *entities.Faq) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *faqRepository) UpdateFaq(ctx context.Context, faq *entities.Faq) error {
	return r.db.WithContext(ctx).Save(faq).Error
}

func (r *faqRepository) DeleteFaq(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Faq{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *faqRepository) GetFaqByID(ctx context.Context, id uint) (*entities.Faq, error) {
	var faq entities.Faq
	if err := r.db.WithContext(ctx).First(&faq, id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) GetFaqs(ctx context.Context) ([]*entities.Faq, error) {
	var faqs []*entities.Faq
	err := r.db.WithContext(ctx).Order("id asc").Find(&faqs).Error
	return faqs, err
}

func (r *faqRepository) GetActiveFaqs(ctx context.Context) ([]*entities.Faq, error) {
	var faqs []*entities.Faq
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&faqs).Error
	return faqs, err
}
