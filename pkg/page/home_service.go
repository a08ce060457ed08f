package page

import (
	"context"

	"khadija-recipes/domain"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/pkg/product"
	"khadija-recipes/pkg/recipe"
)

const homeRecipes = 6

// staticPages maps the short page names to their gettext titles.
var staticPages = map[string]string{
	"privacy": "Privacy Policy",
	"terms":   "Terms and Conditions",
}

type (
	HomeService interface {
		Home(ctx context.Context) (domain.HomeResponse, error)
		StaticPage(ctx context.Context, name string) (domain.StaticPage, error)
	}

	homeService struct {
		productService product.ProductService
		recipeService  recipe.RecipeService
		faqService     FaqService
		messages       *i18n.Messages
		social         domain.SocialLinks
	}
)

func NewHomeService(
	productService product.ProductService,
	recipeService recipe.RecipeService,
	faqService FaqService,
	messages *i18n.Messages,
	social domain.SocialLinks,
) HomeService {
	return &homeService{
		productService: productService,
		recipeService:  recipeService,
		faqService:     faqService,
		messages:       messages,
		social:         social,
	}
}

func brand() domain.Brand {
	return domain.Brand{
		Name:      domain.BrandName,
		ShortName: domain.BrandShortName,
		Emoji:     domain.BrandEmoji,
	}
}

func (s *homeService) Home(ctx context.Context) (domain.HomeResponse, error) {
	products, err := s.productService.GetProducts(ctx)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	recipes, err := s.recipeService.GetRecipes(ctx, 1, homeRecipes)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	faqs, err := s.faqService.GetActiveFaqs(ctx)
	if err != nil {
		return domain.HomeResponse{}, err
	}

	return domain.HomeResponse{
		Title:    s.messages.T(ctx, "Tasty recipes make from Bern"),
		Language: i18n.FromContext(ctx),
		Brand:    brand(),
		Products: products,
		Recipes:  recipes.Recipes,
		Faqs:     faqs,
		Social:   s.social,
	}, nil
}

func (s *homeService) StaticPage(ctx context.Context, name string) (domain.StaticPage, error) {
	title, ok := staticPages[name]
	if !ok {
		return domain.StaticPage{}, domain.ErrPageNotFound
	}
	return domain.StaticPage{
		Name:     name,
		Title:    s.messages.T(ctx, title),
		Language: i18n.FromContext(ctx),
		Brand:    brand(),
	}, nil
}
