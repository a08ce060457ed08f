package config_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"khadija-recipes/cmd/config"
	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testApp struct {
	app     *fiber.App
	db      *gorm.DB
	storage *testutil.Storage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	store := &testutil.Storage{}
	app, err := config.Setup(db, config.Dependencies{
		S3:     store,
		AppURL: "https://khadija.test/",
		Social: domain.SocialLinks{Instagram: "https://instagram.com/khadija"},
	})
	require.NoError(t, err)
	return &testApp{app: app, db: db, storage: store}
}

func (a *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func (a *testApp) get(t *testing.T, target string) *http.Response {
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (a *testApp) sendJSON(t *testing.T, method, target string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return a.do(t, req)
}

func decode(t *testing.T, res *http.Response, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func seedRecipe(t *testing.T, db *gorm.DB) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{
		Title:        entities.LocalizedText{"de": "Tajine", "fr": "Tajine aux légumes"},
		Introduction: entities.LocalizedText{"de": "Ein Klassiker.", "fr": "Un classique."},
		MainImage:    "recipes/tajine.png",
		IsPublished:  true,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestPublicRecipePages(t *testing.T) {
	a := newTestApp(t)
	seedRecipe(t, a.db)
	require.NoError(t, a.db.Create(&entities.Recipe{
		Title:        entities.Text("Entwurf"),
		Introduction: entities.Text("Geheim."),
	}).Error)

	res := a.get(t, "/de/recipes")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var list domain.RecipeListResponse
	env := decode(t, res, &list)
	assert.True(t, env.Status)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "Tajine", list.Recipes[0].Title)
	assert.Equal(t, int64(1), list.Pagination.Total)

	res = a.get(t, "/fr/recipes/tajine-aux-legumes")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var detail domain.RecipeDetail
	decode(t, res, &detail)
	assert.Equal(t, "Tajine aux légumes", detail.Title)
	assert.Equal(t, "/de/recipes/tajine", detail.Alternates["de"])
	assert.Equal(t, "fr", res.Header.Get(fiber.HeaderContentLanguage))

	res = a.get(t, "/de/recipes/entwurf")
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	env = decode(t, res, nil)
	assert.False(t, env.Status)
	assert.Equal(t, domain.ErrRecipeNotFound.Error(), env.Error)

	res = a.get(t, "/xx/recipes")
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestAdminRecipeLifecycle(t *testing.T) {
	a := newTestApp(t)

	res := a.sendJSON(t, http.MethodPost, "/api/v1/admin/recipes", domain.RecipeRequest{
		Title:        map[string]string{"en": "No default"},
		Introduction: map[string]string{"de": "Text"},
	})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	res = a.sendJSON(t, http.MethodPost, "/api/v1/admin/recipes", domain.RecipeRequest{
		Title:        map[string]string{"de": "Couscous"},
		Introduction: map[string]string{"de": "Locker."},
		Difficulty:   "easy",
		IsPublished:  true,
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var created entities.Recipe
	decode(t, res, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, entities.DifficultyEasy, created.Difficulty)

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	part, err := w.CreateFormFile("image", "couscous.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	target := "/api/v1/admin/recipes/" + itoa(created.ID) + "/images/main"
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(form.Bytes()))
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	res = a.do(t, req)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var upload domain.ImageUploadResponse
	decode(t, res, &upload)
	assert.True(t, strings.HasPrefix(upload.Key, "recipes/"))
	assert.Equal(t, "https://cdn.test/"+upload.Key, upload.URL)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/recipes/"+itoa(created.ID)+"/images/side", nil)
	res = a.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	res = a.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/recipes/"+itoa(created.ID), nil))
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	res = a.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/recipes/"+itoa(created.ID), nil))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	res = a.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/recipes/abc", nil))
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestHomeLanguageResolution(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"default", "/", nil, "de"},
		{"accept-language", "/", map[string]string{fiber.HeaderAcceptLanguage: "fr-CH, fr;q=0.9, en;q=0.8"}, "fr"},
		{"cookie", "/", map[string]string{fiber.HeaderCookie: "lang=it"}, "it"},
		{"query beats cookie", "/?lang=es", map[string]string{fiber.HeaderCookie: "lang=it"}, "es"},
		{"unsupported", "/", map[string]string{fiber.HeaderAcceptLanguage: "ja"}, "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			res := a.do(t, req)
			require.Equal(t, fiber.StatusOK, res.StatusCode)
			var home domain.HomeResponse
			decode(t, res, &home)
			assert.Equal(t, tt.want, home.Language)
			assert.Equal(t, domain.BrandName, home.Brand.Name)
			assert.Equal(t, "https://instagram.com/khadija", home.Social.Instagram)
		})
	}
}

func TestStaticRoutes(t *testing.T) {
	a := newTestApp(t)

	res := a.get(t, "/favicon.ico")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "image/svg+xml; charset=utf-8", res.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "public, max-age=2592000", res.Header.Get(fiber.HeaderCacheControl))
	assert.Contains(t, readBody(t, res), domain.BrandEmoji)

	res = a.get(t, "/robots.txt")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, readBody(t, res), "Sitemap: https://khadija.test/sitemap.xml")

	res = a.get(t, "/~/p")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var privacy domain.StaticPage
	decode(t, res, &privacy)
	assert.Equal(t, "Privacy Policy", privacy.Title)

	res = a.get(t, "/~/t")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	res = a.get(t, "/fr/blog/")
	assert.Equal(t, fiber.StatusFound, res.StatusCode)
	assert.Equal(t, "/fr/recipes", res.Header.Get(fiber.HeaderLocation))

	res = a.get(t, "/de/blog/tajine/")
	assert.Equal(t, fiber.StatusFound, res.StatusCode)
	assert.Equal(t, "/de/recipes/tajine", res.Header.Get(fiber.HeaderLocation))
}

func TestLegacyRedirects(t *testing.T) {
	a := newTestApp(t)

	res := a.sendJSON(t, http.MethodPost, "/api/v1/admin/redirects", domain.RedirectRequest{
		OldPath: "/de/rezepte/tajine/",
		NewPath: "/de/recipes/tajine",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res = a.get(t, "/de/rezepte/tajine?utm=pin")
	assert.Equal(t, fiber.StatusMovedPermanently, res.StatusCode)
	assert.Equal(t, "/de/recipes/tajine?utm=pin", res.Header.Get(fiber.HeaderLocation))

	res = a.get(t, "/de/rezepte/couscous/")
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res = a.sendJSON(t, http.MethodPost, "/api/v1/admin/redirects", domain.RedirectRequest{
		OldPath: "no-slash",
		NewPath: "/",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestFeedsAndSitemap(t *testing.T) {
	a := newTestApp(t)
	seedRecipe(t, a.db)
	p := &entities.Product{Title: entities.Text("Harissa"), Description: entities.Text("Scharf.")}
	require.NoError(t, a.db.Create(p).Error)
	require.NoError(t, a.db.Create(&entities.ProductImage{ProductID: p.ID, Image: "product-images/h.jpg", Alt: entities.Text("Glas")}).Error)

	res := a.get(t, "/pins/recipes/fr")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get(fiber.HeaderContentType), "application/rss+xml")
	body := readBody(t, res)
	assert.Contains(t, body, "<title>List of recipes</title>")
	assert.Contains(t, body, "<language>fr</language>")
	assert.Contains(t, body, "https://khadija.test/fr/recipes/tajine-aux-legumes")
	assert.Contains(t, body, `url="https://cdn.test/recipes/tajine.png"`)
	assert.Contains(t, body, `type="image/png"`)

	res = a.get(t, "/pins/products/de")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	body = readBody(t, res)
	assert.Contains(t, body, "Harissa")
	assert.Contains(t, body, `url="https://cdn.test/product-images/h.jpg"`)
	assert.Contains(t, body, `type="image/jpeg"`)

	res = a.get(t, "/pins/recipes/xx")
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res = a.get(t, "/sitemap.xml")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	body = readBody(t, res)
	assert.Contains(t, body, "<loc>https://khadija.test/de/recipes/tajine</loc>")
	assert.Contains(t, body, `<xhtml:link rel="alternate" hreflang="fr" href="https://khadija.test/fr/recipes/tajine-aux-legumes"></xhtml:link>`)
	assert.Contains(t, body, "<loc>https://khadija.test/en/products/harissa</loc>")
}

func TestAdminCatalogAndFaqs(t *testing.T) {
	a := newTestApp(t)

	res := a.sendJSON(t, http.MethodPost, "/api/v1/admin/units", domain.UnitRequest{
		Abbreviation: "g",
		Name:         map[string]string{"de": "Gramm"},
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res = a.sendJSON(t, http.MethodPost, "/api/v1/admin/ingredients", domain.IngredientRequest{
		Name:       map[string]string{"de": "Ei", "en": "Egg"},
		NamePlural: map[string]string{"de": "Eier", "en": "Eggs"},
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ingredients?lang=en", nil)
	res = a.do(t, req)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var ingredients []domain.Ingredient
	decode(t, res, &ingredients)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Eggs", ingredients[0].NamePlural)

	res = a.sendJSON(t, http.MethodPost, "/api/v1/admin/faqs", domain.FaqRequest{
		Question: map[string]string{"de": "Versand?"},
		Answer:   map[string]string{"de": "Ja."},
		IsActive: true,
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res = a.get(t, "/")
	var home domain.HomeResponse
	decode(t, res, &home)
	require.Len(t, home.Faqs, 1)
	assert.Equal(t, "Versand?", home.Faqs[0].Question)

	res = a.sendJSON(t, http.MethodPut, "/api/v1/admin/faqs/99", domain.FaqRequest{
		Question: map[string]string{"de": "?"},
		Answer:   map[string]string{"de": "!"},
	})
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
