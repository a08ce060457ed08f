package handlers

import (
	"fmt"
	"strings"

	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/pkg/page"
	"khadija-recipes/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

const faviconMaxAge = 60 * 60 * 24 * 30

type (
	PageHandler interface {
		Home(c *fiber.Ctx) error
		Privacy(c *fiber.Ctx) error
		Terms(c *fiber.Ctx) error
		Robots(c *fiber.Ctx) error
		Favicon(c *fiber.Ctx) error
		BlogList(c *fiber.Ctx) error
		BlogDetail(c *fiber.Ctx) error
	}

	pageHandler struct {
		homeService page.HomeService
		appURL      string
	}
)

func NewPageHandler(homeService page.HomeService, appURL string) PageHandler {
	return &pageHandler{
		homeService: homeService,
		appURL:      strings.TrimRight(appURL, "/"),
	}
}

func (h *pageHandler) Home(c *fiber.Ctx) error {
	res, err := h.homeService.Home(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetHome, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHome)
}

func (h *pageHandler) Privacy(c *fiber.Ctx) error {
	return h.staticPage(c, "privacy")
}

func (h *pageHandler) Terms(c *fiber.Ctx) error {
	return h.staticPage(c, "terms")
}

func (h *pageHandler) staticPage(c *fiber.Ctx, name string) error {
	res, err := h.homeService.StaticPage(c.UserContext(), name)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetPage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPage)
}

func (h *pageHandler) Robots(c *fiber.Ctx) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /api/\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", h.appURL)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(b.String())
}

// Favicon draws the brand emoji as an SVG icon.
func (h *pageHandler) Favicon(c *fiber.Ctx) error {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<text y=".9em" font-size="90">` + domain.BrandEmoji + `</text>` +
		`</svg>`

	c.Set(fiber.HeaderContentType, "image/svg+xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", faviconMaxAge))
	return c.SendString(svg)
}

// BlogList sends visitors of the previous website's blog index to the
// recipe list.
func (h *pageHandler) BlogList(c *fiber.Ctx) error {
	lang, ok := pathLanguage(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPage, domain.ErrUnsupportedLanguage)
	}
	return c.Redirect(fmt.Sprintf("/%s/recipes", lang), fiber.StatusFound)
}

func (h *pageHandler) BlogDetail(c *fiber.Ctx) error {
	lang, ok := pathLanguage(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPage, domain.ErrUnsupportedLanguage)
	}
	return c.Redirect(recipe.RecipePath(lang, c.Params("slug")), fiber.StatusFound)
}
