package page

import (
	"context"
	"errors"

	"khadija-recipes/domain"
	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	FaqService interface {
		GetActiveFaqs(ctx context.Context) ([]domain.Faq, error)
		AdminGetFaqs(ctx context.Context) ([]*entities.Faq, error)
		CreateFaq(ctx context.Context, req domain.FaqRequest) (*entities.Faq, error)
		UpdateFaq(ctx context.Context, id uint, req domain.FaqRequest) (*entities.Faq, error)
		DeleteFaq(ctx context.Context, id uint) error
	}

	faqService struct {
		faqRepository FaqRepository
	}
)

func NewFaqService(faqRepository FaqRepository) FaqService {
	return &faqService{faqRepository: faqRepository}
}

// FaqView resolves a FAQ into the active language of ctx.
func FaqView(ctx context.Context, f *entities.Faq) domain.Faq {
	return domain.Faq{
		ID:       f.ID,
		Question: f.LocalizedQuestion(ctx),
		Answer:   f.LocalizedAnswer(ctx),
		IsActive: f.IsActive,
	}
}

func (s *faqService) GetActiveFaqs(ctx context.Context) ([]domain.Faq, error) {
	faqs, err := s.faqRepository.GetActiveFaqs(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Faq, 0, len(faqs))
	for _, f := range faqs {
		res = append(res, FaqView(ctx, f))
	}
	return res, nil
}

func (s *faqService) AdminGetFaqs(ctx context.Context) ([]*entities.Faq, error) {
	return s.faqRepository.GetFaqs(ctx)
}

func (s *faqService) CreateFaq(ctx context.Context, req domain.FaqRequest) (*entities.Faq, error) {
	faq := &entities.Faq{
		Question: entities.LocalizedText(req.Question).Clone(),
		Answer:   entities.LocalizedText(req.Answer).Clone(),
		IsActive: req.IsActive,
	}
	if err := s.faqRepository.CreateFaq(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *faqService) UpdateFaq(ctx context.Context, id uint, req domain.FaqRequest) (*entities.Faq, error) {
	faq, err := s.faqRepository.GetFaqByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFaqNotFound
		}
		return nil, err
	}
	faq.Question = entities.LocalizedText(req.Question).Clone()
	faq.Answer = entities.LocalizedText(req.Answer).Clone()
	faq.IsActive = req.IsActive
	if err := s.faqRepository.UpdateFaq(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *faqService) DeleteFaq(ctx context.Context, id uint) error {
	if err := s.faqRepository.DeleteFaq(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFaqNotFound
		}
		return err
	}
	return nil
}
