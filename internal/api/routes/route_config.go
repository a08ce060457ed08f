package routes

import (
	"time"

	"khadija-recipes/internal/api/handlers"
	"khadija-recipes/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Config struct {
	App             *fiber.App
	RecipeHandler   handlers.RecipeHandler
	ProductHandler  handlers.ProductHandler
	CatalogHandler  handlers.CatalogHandler
	PageHandler     handlers.PageHandler
	FaqHandler      handlers.FaqHandler
	RedirectHandler handlers.RedirectHandler
	FeedHandler     handlers.FeedHandler
	Middleware      middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.RedirectMiddleware())
	c.App.Use(c.Middleware.LanguageMiddleware())
	c.GuestRoute()
	c.Admin()
	c.Pages()
	c.Feeds()
	c.Recipes()
	c.Products()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Pages() {
	c.App.Get("/", c.PageHandler.Home)
	c.App.Get("/robots.txt", c.PageHandler.Robots)
	c.App.Get("/favicon.ico", c.PageHandler.Favicon)
	c.App.Get("/~/p", c.PageHandler.Privacy)
	c.App.Get("/~/t", c.PageHandler.Terms)

	// previous website
	c.App.Get("/:lang/blog/", c.PageHandler.BlogList)
	c.App.Get("/:lang/blog/:slug/", c.PageHandler.BlogDetail)
}

func (c *Config) Feeds() {
	c.App.Get("/sitemap.xml", c.FeedHandler.Sitemap)
	c.App.Get("/pins/products/:lang", c.FeedHandler.ProductPins)
	c.App.Get("/pins/recipes/:lang", c.FeedHandler.RecipePins)
}

func (c *Config) Recipes() {
	c.App.Get("/:lang/recipes", c.RecipeHandler.GetRecipes)
	c.App.Get("/:lang/recipes/:slug", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) Products() {
	c.App.Get("/:lang/products", c.ProductHandler.GetProducts)
	c.App.Get("/:lang/products/:slug", c.ProductHandler.GetProductDetail)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	recipes := admin.Group("/recipes")
	{
		recipes.Get("", c.RecipeHandler.AdminGetRecipes)
		recipes.Post("", c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.RecipeHandler.AdminGetRecipe)
		recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/images/:kind", c.RecipeHandler.UploadRecipeImage)
	}

	ingredients := admin.Group("/ingredients")
	{
		ingredients.Get("", c.CatalogHandler.GetIngredients)
		ingredients.Post("", c.CatalogHandler.CreateIngredient)
		ingredients.Put("/:id", c.CatalogHandler.UpdateIngredient)
		ingredients.Delete("/:id", c.CatalogHandler.DeleteIngredient)
	}

	units := admin.Group("/units")
	{
		units.Get("", c.CatalogHandler.GetUnits)
		units.Post("", c.CatalogHandler.CreateUnit)
		units.Put("/:id", c.CatalogHandler.UpdateUnit)
		units.Delete("/:id", c.CatalogHandler.DeleteUnit)
	}

	products := admin.Group("/products")
	{
		products.Get("", c.ProductHandler.AdminGetProducts)
		products.Post("", c.ProductHandler.CreateProduct)
		products.Get("/:id", c.ProductHandler.AdminGetProduct)
		products.Put("/:id", c.ProductHandler.UpdateProduct)
		products.Delete("/:id", c.ProductHandler.DeleteProduct)
		products.Post("/:id/images", c.ProductHandler.UploadProductImage)
		products.Delete("/:id/images/:image_id", c.ProductHandler.DeleteProductImage)
	}

	faqs := admin.Group("/faqs")
	{
		faqs.Get("", c.FaqHandler.GetFaqs)
		faqs.Post("", c.FaqHandler.CreateFaq)
		faqs.Put("/:id", c.FaqHandler.UpdateFaq)
		faqs.Delete("/:id", c.FaqHandler.DeleteFaq)
	}

	redirects := admin.Group("/redirects")
	{
		redirects.Get("", c.RedirectHandler.GetRedirects)
		redirects.Post("", c.RedirectHandler.CreateRedirect)
		redirects.Put("/:id", c.RedirectHandler.UpdateRedirect)
		redirects.Delete("/:id", c.RedirectHandler.DeleteRedirect)
	}
}
