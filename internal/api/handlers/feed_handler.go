package handlers

import (
	"context"
	"encoding/xml"
	"mime"
	"path"
	"strings"
	"time"

	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/pkg/product"
	"khadija-recipes/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gorilla/feeds"
)

const (
	// feedWindow is how far back the pin feeds look for new content.
	feedWindow = 30 * 24 * time.Hour

	defaultEnclosureType = "image/png"
)

type (
	FeedHandler interface {
		ProductPins(c *fiber.Ctx) error
		RecipePins(c *fiber.Ctx) error
		Sitemap(c *fiber.Ctx) error
	}

	feedHandler struct {
		productService product.ProductService
		recipeService  recipe.RecipeService
		messages       *i18n.Messages
		appURL         string
	}

	sitemapURLSet struct {
		XMLName xml.Name     `xml:"urlset"`
		Xmlns   string       `xml:"xmlns,attr"`
		XHTML   string       `xml:"xmlns:xhtml,attr"`
		URLs    []sitemapURL `xml:"url"`
	}

	sitemapURL struct {
		Loc        string             `xml:"loc"`
		LastMod    string             `xml:"lastmod,omitempty"`
		ChangeFreq string             `xml:"changefreq,omitempty"`
		Priority   string             `xml:"priority,omitempty"`
		Alternates []sitemapAlternate `xml:"xhtml:link"`
	}

	sitemapAlternate struct {
		Rel      string `xml:"rel,attr"`
		Hreflang string `xml:"hreflang,attr"`
		Href     string `xml:"href,attr"`
	}
)

func NewFeedHandler(
	productService product.ProductService,
	recipeService recipe.RecipeService,
	messages *i18n.Messages,
	appURL string,
) FeedHandler {
	return &feedHandler{
		productService: productService,
		recipeService:  recipeService,
		messages:       messages,
		appURL:         strings.TrimRight(appURL, "/"),
	}
}

func (h *feedHandler) ProductPins(c *fiber.Ctx) error {
	if _, ok := pathLanguage(c); !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetFeed, domain.ErrUnsupportedLanguage)
	}
	ctx := c.UserContext()

	items, err := h.productService.GetRecentProducts(ctx, time.Now().Add(-feedWindow))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetFeed, err)
	}
	return h.sendRSS(ctx, c, "List of products", "Last products published in my website", items)
}

func (h *feedHandler) RecipePins(c *fiber.Ctx) error {
	if _, ok := pathLanguage(c); !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetFeed, domain.ErrUnsupportedLanguage)
	}
	ctx := c.UserContext()

	items, err := h.recipeService.GetRecentRecipes(ctx, time.Now().Add(-feedWindow))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetFeed, err)
	}
	return h.sendRSS(ctx, c, "List of recipes", "Last recipes published in my website", items)
}

func (h *feedHandler) sendRSS(ctx context.Context, c *fiber.Ctx, title, description string, items []domain.FeedItem) error {
	feed := &feeds.Feed{
		Title:       h.messages.T(ctx, title),
		Link:        &feeds.Link{Href: h.appURL + "/"},
		Description: h.messages.T(ctx, description),
		Created:     time.Now(),
	}
	for _, item := range items {
		link := h.appURL + item.Link
		entry := &feeds.Item{
			Id:          link,
			Title:       item.Title,
			Link:        &feeds.Link{Href: link},
			Description: item.Description,
			Created:     item.Created,
			Updated:     item.Updated,
		}
		if item.ImageURL != "" {
			entry.Enclosure = &feeds.Enclosure{
				Url:    item.ImageURL,
				Length: "0",
				Type:   enclosureType(item.ImageURL),
			}
		}
		feed.Items = append(feed.Items, entry)
	}

	rss := (&feeds.Rss{Feed: feed}).RssFeed()
	rss.Language = i18n.FromContext(ctx)
	body, err := feeds.ToXML(rss)
	if err != nil {
		log.Errorf("failed to encode feed %q: %v", title, err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFeed, err)
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.SendString(body)
}

func enclosureType(url string) string {
	if t := mime.TypeByExtension(path.Ext(url)); strings.HasPrefix(t, "image/") {
		return t
	}
	return defaultEnclosureType
}

// Sitemap lists every localized recipe and product page with its
// hreflang alternates.
func (h *feedHandler) Sitemap(c *fiber.Ctx) error {
	ctx := c.UserContext()

	recipes, err := h.recipeService.GetSitemapEntries(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetFeed, err)
	}
	products, err := h.productService.GetSitemapEntries(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetFeed, err)
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
		URLs:  make([]sitemapURL, 0, len(recipes)+len(products)),
	}
	for _, e := range recipes {
		set.URLs = append(set.URLs, h.sitemapURL(e, "yearly", "0.7"))
	}
	for _, e := range products {
		set.URLs = append(set.URLs, h.sitemapURL(e, "monthly", "0.8"))
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFeed, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(append([]byte(xml.Header), body...))
}

func (h *feedHandler) sitemapURL(e domain.SitemapEntry, changeFreq, priority string) sitemapURL {
	u := sitemapURL{
		Loc:        h.appURL + e.Path,
		ChangeFreq: changeFreq,
		Priority:   priority,
	}
	if !e.LastModified.IsZero() {
		u.LastMod = e.LastModified.UTC().Format("2006-01-02")
	}
	for _, lang := range i18n.Languages() {
		if p, ok := e.Alternates[lang]; ok {
			u.Alternates = append(u.Alternates, sitemapAlternate{
				Rel:      "alternate",
				Hreflang: lang,
				Href:     h.appURL + p,
			})
		}
	}
	return u
}
