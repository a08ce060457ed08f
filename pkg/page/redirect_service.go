package page

import (
	"context"
	"errors"
	"strings"

	"khadija-recipes/domain"
	"khadija-recipes/entities"

	"gorm.io/gorm"
)

type (
	RedirectService interface {
		// Resolve finds the target of a legacy path, trying it without and
		// with a trailing slash.
		Resolve(ctx context.Context, path string) (string, bool, error)
		GetRedirects(ctx context.Context) ([]domain.Redirect, error)
		CreateRedirect(ctx context.Context, req domain.RedirectRequest) (*entities.Redirect, error)
		UpdateRedirect(ctx context.Context, id uint, req domain.RedirectRequest) (*entities.Redirect, error)
		DeleteRedirect(ctx context.Context, id uint) error
	}

	redirectService struct {
		redirectRepository RedirectRepository
	}
)

func NewRedirectService(redirectRepository RedirectRepository) RedirectService {
	return &redirectService{redirectRepository: redirectRepository}
}

func (s *redirectService) Resolve(ctx context.Context, path string) (string, bool, error) {
	path = strings.TrimRight(path, "/")
	for _, candidate := range []string{path, path + "/"} {
		if candidate == "" {
			continue
		}
		redirect, err := s.redirectRepository.GetRedirectByOldPath(ctx, candidate)
		if err == nil {
			return redirect.NewPath, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, err
		}
	}
	return "", false, nil
}

func (s *redirectService) GetRedirects(ctx context.Context) ([]domain.Redirect, error) {
	redirects, err := s.redirectRepository.GetRedirects(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Redirect, 0, len(redirects))
	for _, r := range redirects {
		res = append(res, domain.Redirect{ID: r.ID, OldPath: r.OldPath, NewPath: r.NewPath})
	}
	return res, nil
}

func (s *redirectService) CreateRedirect(ctx context.Context, req domain.RedirectRequest) (*entities.Redirect, error) {
	redirect := &entities.Redirect{OldPath: req.OldPath, NewPath: req.NewPath}
	if err := s.redirectRepository.CreateRedirect(ctx, redirect); err != nil {
		return nil, err
	}
	return redirect, nil
}

func (s *redirectService) UpdateRedirect(ctx context.Context, id uint, req domain.RedirectRequest) (*entities.Redirect, error) {
	redirect, err := s.redirectRepository.GetRedirectByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRedirectNotFound
		}
		return nil, err
	}
	redirect.OldPath = req.OldPath
	redirect.NewPath = req.NewPath
	if err := s.redirectRepository.UpdateRedirect(ctx, redirect); err != nil {
		return nil, err
	}
	return redirect, nil
}

func (s *redirectService) DeleteRedirect(ctx context.Context, id uint) error {
	if err := s.redirectRepository.DeleteRedirect(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRedirectNotFound
		}
		return err
	}
	return nil
}
