package config

import (
	"io"
	"os"

	"khadija-recipes/domain"
	"khadija-recipes/internal/api/handlers"
	"khadija-recipes/internal/api/routes"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/middleware"
	"khadija-recipes/internal/utils"
	"khadija-recipes/internal/utils/storage"
	"khadija-recipes/pkg/page"
	"khadija-recipes/pkg/product"
	"khadija-recipes/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// Dependencies are the collaborators of the HTTP app that live outside
// the database.
type Dependencies struct {
	S3        storage.AwsS3
	Messages  *i18n.Messages
	AccessLog io.Writer
	AppURL    string
	Social    domain.SocialLinks
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// setting up logging
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Errorf("error creating logs directory: %v", err)
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Errorf("error opening file: %v", err)
		return nil, err
	}

	return Setup(db, Dependencies{
		S3:        storage.NewAwsS3(),
		Messages:  i18n.NewMessages(utils.GetConfig("LOCALE_DIR"), i18n.MessageDomain),
		AccessLog: file,
		AppURL:    utils.GetConfig("APP_URL"),
		Social: domain.SocialLinks{
			WhatsApp:  utils.GetConfig("WHATSAPP_URL"),
			Telegram:  utils.GetConfig("TELEGRAM_URL"),
			Instagram: utils.GetConfig("INSTAGRAM_URL"),
		},
	})
}

// Setup wires repositories, services and handlers into a fiber app.
func Setup(db *gorm.DB, deps Dependencies) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: domain.BrandName,
	})
	validator := utils.Validate

	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Europe/Zurich",
			Output:     deps.AccessLog,
		}))
	}

	// Repository
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientRepository := recipe.NewIngredientRepository(db)
	unitRepository := recipe.NewUnitRepository(db)
	productRepository := product.NewProductRepository(db)
	faqRepository := page.NewFaqRepository(db)
	redirectRepository := page.NewRedirectRepository(db)

	// Service
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository, unitRepository, deps.S3)
	catalogService := recipe.NewCatalogService(ingredientRepository, unitRepository)
	productService := product.NewProductService(productRepository, faqRepository, deps.S3)
	faqService := page.NewFaqService(faqRepository)
	redirectService := page.NewRedirectService(redirectRepository)
	homeService := page.NewHomeService(productService, recipeService, faqService, deps.Messages, deps.Social)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	pageHandler := handlers.NewPageHandler(homeService, deps.AppURL)
	faqHandler := handlers.NewFaqHandler(faqService, validator)
	redirectHandler := handlers.NewRedirectHandler(redirectService, validator)
	feedHandler := handlers.NewFeedHandler(productService, recipeService, deps.Messages, deps.AppURL)

	// routes
	routesConfig := routes.Config{
		App:             app,
		RecipeHandler:   recipeHandler,
		ProductHandler:  productHandler,
		CatalogHandler:  catalogHandler,
		PageHandler:     pageHandler,
		FaqHandler:      faqHandler,
		RedirectHandler: redirectHandler,
		FeedHandler:     feedHandler,
		Middleware:      middleware.NewMiddleware(redirectService),
	}
	routesConfig.Setup()
	return app, nil
}
