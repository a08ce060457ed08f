package domain

import (
	"errors"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedValidation     = "request validation failed"
	MessageSuccessUploadImage   = "image uploaded successfully"
	MessageFailedUploadImage    = "failed to upload image"

	ErrParseID             = errors.New("failed to parse id")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrImageRequired       = errors.New("image file is required")
)

type (
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	}

	ImageUploadResponse struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
)

// NormalizePage clamps page and limit query values to sane bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

type (
	FeedItem struct {
		Title       string
		Description string
		Link        string
		ImageURL    string
		Created     time.Time
		Updated     time.Time
	}

	// SitemapEntry is one localized page. Paths are site-relative.
	SitemapEntry struct {
		Path         string
		LastModified time.Time
		Alternates   map[string]string
	}
)
