package domain

import "errors"

var (
	MessageSuccessGetHome   = "success get home page"
	MessageSuccessGetFaqs   = "success get faqs"
	MessageSuccessCreateFaq = "faq created successfully"
	MessageSuccessUpdateFaq = "faq updated successfully"
	MessageSuccessDeleteFaq = "faq deleted successfully"
	MessageFailedGetHome    = "failed to get home page"
	MessageSuccessGetPage   = "success get page"
	MessageFailedGetPage    = "failed to get page"
	MessageFailedGetFeed    = "failed to build feed"
	MessageFailedGetFaqs    = "failed to get faqs"
	MessageFailedSaveFaq    = "failed to save faq"
	MessageFailedDeleteFaq  = "failed to delete faq"

	MessageSuccessGetRedirects   = "success get redirects"
	MessageSuccessSaveRedirect   = "redirect saved successfully"
	MessageSuccessDeleteRedirect = "redirect deleted successfully"
	MessageFailedGetRedirects    = "failed to get redirects"
	MessageFailedSaveRedirect    = "failed to save redirect"
	MessageFailedDeleteRedirect  = "failed to delete redirect"

	ErrFaqNotFound      = errors.New("faq not found")
	ErrRedirectNotFound = errors.New("redirect not found")
	ErrPageNotFound     = errors.New("page not found")
)

// Brand of the website.
var (
	BrandName      = "Khadija Recipes"
	BrandShortName = "Khadija"
	BrandEmoji     = "🍳"
)

type (
	FaqRequest struct {
		Question map[string]string `json:"question" validate:"required,default_lang"`
		Answer   map[string]string `json:"answer" validate:"required,default_lang"`
		IsActive bool              `json:"is_active"`
	}

	RedirectRequest struct {
		OldPath string `json:"old_path" validate:"required,startswith=/,max=200"`
		NewPath string `json:"new_path" validate:"required,max=200"`
	}

	Faq struct {
		ID       uint   `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
		IsActive bool   `json:"is_active"`
	}

	Redirect struct {
		ID      uint   `json:"id"`
		OldPath string `json:"old_path"`
		NewPath string `json:"new_path"`
	}

	SocialLinks struct {
		WhatsApp  string `json:"whatsapp,omitempty"`
		Telegram  string `json:"telegram,omitempty"`
		Instagram string `json:"instagram,omitempty"`
	}

	Brand struct {
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
		Emoji     string `json:"emoji"`
	}

	HomeResponse struct {
		Title    string           `json:"title"`
		Language string           `json:"language"`
		Brand    Brand            `json:"brand"`
		Products []ProductSummary `json:"products"`
		Recipes  []RecipeSummary  `json:"recipes"`
		Faqs     []Faq            `json:"faqs"`
		Social   SocialLinks      `json:"social"`
	}

	StaticPage struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Language string `json:"language"`
		Brand    Brand  `json:"brand"`
	}
)
