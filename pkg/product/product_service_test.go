package product_test

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/testutil"
	"khadija-recipes/pkg/page"
	"khadija-recipes/pkg/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService(t *testing.T) (product.ProductService, *gorm.DB, *testutil.Storage) {
	t.Helper()
	db := testutil.NewDB(t)
	store := &testutil.Storage{}
	svc := product.NewProductService(product.NewProductRepository(db), page.NewFaqRepository(db), store)
	return svc, db, store
}

func harissa() domain.ProductRequest {
	return domain.ProductRequest{
		Title:       map[string]string{"de": "Harissa Paste", "fr": "Pâte de harissa"},
		Description: map[string]string{"de": "Scharf und würzig.", "fr": "Piquante."},
		TotalFat:    dec("1.5"),
		TotalCarbo:  dec("8"),
		Protein:     dec("2"),
		Price:       dec("6.90"),
	}
}

func TestCreateProductAndDetail(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, harissa())
	require.NoError(t, err)
	assert.Equal(t, "harissa-paste", created.SlugDefault)
	require.NotNil(t, created.Calories)
	assert.Equal(t, "53.5", created.Calories.String())

	require.NoError(t, db.Create(&entities.Faq{Question: entities.Text("Versand?"), Answer: entities.Text("Ja."), IsActive: true}).Error)
	require.NoError(t, db.Create(&entities.Faq{Question: entities.Text("Alt?"), Answer: entities.Text("Nein."), IsActive: false}).Error)

	frCtx := i18n.WithLanguage(ctx, "fr")
	detail, err := svc.GetProductDetail(frCtx, "pate-de-harissa")
	require.NoError(t, err)
	assert.Equal(t, "Pâte de harissa", detail.Title)
	assert.Equal(t, "/fr/products/pate-de-harissa", detail.URL)
	assert.Equal(t, "Piquante.", detail.Description)
	assert.Equal(t, "/de/products/harissa-paste", detail.Alternates["de"])
	assert.Equal(t, "/en/products/harissa-paste", detail.Alternates["en"])
	require.Len(t, detail.Faqs, 1)
	assert.Equal(t, "Versand?", detail.Faqs[0].Question)

	byDefault, err := svc.GetProductDetail(ctx, "harissa-paste")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byDefault.ID)

	_, err = svc.GetProductDetail(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPageDescriptionIsTruncated(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	req := harissa()
	long := make([]rune, 0, 400)
	for i := 0; i < 400; i++ {
		long = append(long, 'ä')
	}
	req.Description = map[string]string{"de": string(long)}
	_, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)

	detail, err := svc.GetProductDetail(ctx, "harissa-paste")
	require.NoError(t, err)
	assert.Len(t, []rune(detail.PageDescription), 300)
	assert.Len(t, []rune(detail.Description), 400)
}

func TestProductImagesAndFeed(t *testing.T) {
	svc, _, store := newService(t)
	ctx := context.Background()

	withImage, err := svc.CreateProduct(ctx, harissa())
	require.NoError(t, err)
	req := harissa()
	req.Title = map[string]string{"de": "Ras el Hanout"}
	_, err = svc.CreateProduct(ctx, req)
	require.NoError(t, err)

	_, err = svc.UploadProductImage(ctx, withImage.ID, domain.ProductImageRequest{})
	assert.ErrorIs(t, err, domain.ErrImageRequired)

	img, err := svc.UploadProductImage(ctx, withImage.ID, domain.ProductImageRequest{
		Image: &multipart.FileHeader{Filename: "glas.png"},
		Alt:   map[string]string{"de": "Ein Glas"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ein Glas", img.Alt)
	require.Len(t, store.Uploaded, 1)
	assert.Contains(t, store.Uploaded[0], "product-images/")
	assert.Equal(t, "https://cdn.test/"+store.Uploaded[0], img.URL)

	items, err := svc.GetRecentProducts(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Harissa Paste", items[0].Title)
	assert.Equal(t, img.URL, items[0].ImageURL)

	items, err = svc.GetRecentProducts(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.DeleteProductImage(ctx, withImage.ID, img.ID))
	assert.Equal(t, store.Uploaded, store.Deleted)
	assert.ErrorIs(t, svc.DeleteProductImage(ctx, withImage.ID, img.ID), domain.ErrProductImageNotFound)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, harissa())
	require.NoError(t, err)

	req := harissa()
	req.Title = map[string]string{"de": "Rote Harissa"}
	req.Price = nil
	updated, err := svc.UpdateProduct(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "rote-harissa", updated.SlugDefault)
	assert.Nil(t, updated.Price)

	list, total, err := svc.AdminGetProducts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	entries, err := svc.GetSitemapEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(i18n.Languages()))

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), domain.ErrProductNotFound)
	_, err = svc.UpdateProduct(ctx, created.ID, req)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
