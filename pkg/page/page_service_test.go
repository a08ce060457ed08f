package page_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/testutil"
	"khadija-recipes/pkg/page"
	"khadija-recipes/pkg/product"
	"khadija-recipes/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaqService(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := page.NewFaqService(page.NewFaqRepository(db))

	active, err := svc.CreateFaq(ctx, domain.FaqRequest{
		Question: map[string]string{"de": "Liefert ihr?", "en": "Do you deliver?"},
		Answer:   map[string]string{"de": "Ja."},
		IsActive: true,
	})
	require.NoError(t, err)
	_, err = svc.CreateFaq(ctx, domain.FaqRequest{
		Question: map[string]string{"de": "Entwurf"},
		Answer:   map[string]string{"de": "Noch nicht."},
	})
	require.NoError(t, err)

	faqs, err := svc.GetActiveFaqs(i18n.WithLanguage(ctx, "en"))
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Do you deliver?", faqs[0].Question)
	assert.Equal(t, "Ja.", faqs[0].Answer)

	all, err := svc.AdminGetFaqs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := svc.UpdateFaq(ctx, active.ID, domain.FaqRequest{
		Question: map[string]string{"de": "Liefert ihr?"},
		Answer:   map[string]string{"de": "Nur in Bern."},
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	faqs, err = svc.GetActiveFaqs(ctx)
	require.NoError(t, err)
	assert.Empty(t, faqs)

	require.NoError(t, svc.DeleteFaq(ctx, active.ID))
	assert.ErrorIs(t, svc.DeleteFaq(ctx, active.ID), domain.ErrFaqNotFound)
	_, err = svc.UpdateFaq(ctx, active.ID, domain.FaqRequest{})
	assert.ErrorIs(t, err, domain.ErrFaqNotFound)
}

func TestRedirectResolve(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := page.NewRedirectService(page.NewRedirectRepository(db))

	_, err := svc.CreateRedirect(ctx, domain.RedirectRequest{OldPath: "/de/blog/tajine/", NewPath: "/de/recipes/tajine"})
	require.NoError(t, err)
	_, err = svc.CreateRedirect(ctx, domain.RedirectRequest{OldPath: "/alt", NewPath: "/"})
	require.NoError(t, err)

	tests := []struct {
		path  string
		want  string
		found bool
	}{
		{"/de/blog/tajine/", "/de/recipes/tajine", true},
		{"/de/blog/tajine", "/de/recipes/tajine", true},
		{"/alt", "/", true},
		{"/alt/", "/", true},
		{"/missing", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		got, found, err := svc.Resolve(ctx, tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.found, found, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	list, err := svc.GetRedirects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/alt", list[0].OldPath)

	updated, err := svc.UpdateRedirect(ctx, list[0].ID, domain.RedirectRequest{OldPath: "/old", NewPath: "/new"})
	require.NoError(t, err)
	assert.Equal(t, "/new", updated.NewPath)

	require.NoError(t, svc.DeleteRedirect(ctx, updated.ID))
	assert.ErrorIs(t, svc.DeleteRedirect(ctx, updated.ID), domain.ErrRedirectNotFound)
}

const frMessages = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: fr\n"

msgid "Tasty recipes make from Bern"
msgstr "Recettes savoureuses de Berne"

msgid "Privacy Policy"
msgstr "Politique de confidentialité"
`

func TestHomeAndStaticPages(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	store := &testutil.Storage{}

	localeDir := t.TempDir()
	poPath := filepath.Join(localeDir, "fr", "LC_MESSAGES", i18n.MessageDomain+".po")
	require.NoError(t, os.MkdirAll(filepath.Dir(poPath), 0o755))
	require.NoError(t, os.WriteFile(poPath, []byte(frMessages), 0o644))

	faqRepo := page.NewFaqRepository(db)
	faqs := page.NewFaqService(faqRepo)
	products := product.NewProductService(product.NewProductRepository(db), faqRepo, store)
	recipes := recipe.NewRecipeService(
		recipe.NewRecipeRepository(db),
		recipe.NewIngredientRepository(db),
		recipe.NewUnitRepository(db),
		store,
	)
	social := domain.SocialLinks{Instagram: "https://instagram.com/khadija"}
	svc := page.NewHomeService(products, recipes, faqs, i18n.NewMessages(localeDir, ""), social)

	require.NoError(t, db.Create(&entities.Product{Title: entities.Text("Harissa"), Description: entities.Text("Scharf.")}).Error)
	require.NoError(t, db.Create(&entities.Recipe{Title: entities.Text("Tajine"), Introduction: entities.Text("Lecker."), IsPublished: true}).Error)
	require.NoError(t, db.Create(&entities.Recipe{Title: entities.Text("Entwurf"), Introduction: entities.Text("Geheim.")}).Error)
	require.NoError(t, db.Create(&entities.Faq{Question: entities.Text("Frage?"), Answer: entities.Text("Antwort."), IsActive: true}).Error)

	frCtx := i18n.WithLanguage(ctx, "fr")
	home, err := svc.Home(frCtx)
	require.NoError(t, err)
	assert.Equal(t, "Recettes savoureuses de Berne", home.Title)
	assert.Equal(t, "fr", home.Language)
	assert.Equal(t, domain.BrandName, home.Brand.Name)
	require.Len(t, home.Products, 1)
	assert.Equal(t, "/fr/products/harissa", home.Products[0].URL)
	require.Len(t, home.Recipes, 1)
	assert.Equal(t, "Tajine", home.Recipes[0].Title)
	assert.Len(t, home.Faqs, 1)
	assert.Equal(t, social, home.Social)

	deHome, err := svc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tasty recipes make from Bern", deHome.Title)

	privacy, err := svc.StaticPage(frCtx, "privacy")
	require.NoError(t, err)
	assert.Equal(t, "Politique de confidentialité", privacy.Title)

	terms, err := svc.StaticPage(frCtx, "terms")
	require.NoError(t, err)
	assert.Equal(t, "Terms and Conditions", terms.Title)

	_, err = svc.StaticPage(ctx, "imprint")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}
