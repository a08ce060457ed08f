package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"khadija-recipes/domain"
	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	imageFolder = "product-images"

	// pageDescriptionLength caps the meta description of a product page.
	pageDescriptionLength = 300
)

type (
	// FaqSource lists the FAQs shown next to product details.
	FaqSource interface {
		GetActiveFaqs(ctx context.Context) ([]*entities.Faq, error)
	}

	ProductService interface {
		GetProducts(ctx context.Context) ([]domain.ProductSummary, error)
		GetProductDetail(ctx context.Context, slug string) (domain.ProductDetail, error)
		GetRecentProducts(ctx context.Context, since time.Time) ([]domain.FeedItem, error)
		GetSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error)

		AdminGetProducts(ctx context.Context, page, limit int) ([]*entities.Product, int64, error)
		AdminGetProduct(ctx context.Context, id uint) (*entities.Product, error)
		CreateProduct(ctx context.Context, req domain.ProductRequest) (*entities.Product, error)
		UpdateProduct(ctx context.Context, id uint, req domain.ProductRequest) (*entities.Product, error)
		DeleteProduct(ctx context.Context, id uint) error
		UploadProductImage(ctx context.Context, id uint, req domain.ProductImageRequest) (domain.ProductImage, error)
		DeleteProductImage(ctx context.Context, productID, imageID uint) error
	}

	productService struct {
		productRepository ProductRepository
		faqs              FaqSource
		s3                storage.AwsS3
	}
)

func NewProductService(productRepository ProductRepository, faqs FaqSource, s3 storage.AwsS3) ProductService {
	return &productService{
		productRepository: productRepository,
		faqs:              faqs,
		s3:                s3,
	}
}

// ProductPath is the site-relative URL of a product page.
func ProductPath(lang, slug string) string {
	return fmt.Sprintf("/%s/products/%s", lang, slug)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func (s *productService) summary(ctx context.Context, p *entities.Product) domain.ProductSummary {
	slug := p.LocalizedSlug(ctx)
	res := domain.ProductSummary{
		ID:    p.ID,
		Title: p.LocalizedTitle(ctx),
		Slug:  slug,
		URL:   ProductPath(i18n.FromContext(ctx), slug),
		Price: p.Price,
	}
	if len(p.Images) > 0 {
		res.ImageURL = s.s3.GetPublicLinkKey(p.Images[0].Image)
	}
	return res
}

func (s *productService) GetProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	products, err := s.productRepository.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.ProductSummary, 0, len(products))
	for _, p := range products {
		res = append(res, s.summary(ctx, p))
	}
	return res, nil
}

func (s *productService) GetProductDetail(ctx context.Context, slug string) (domain.ProductDetail, error) {
	product, err := s.productRepository.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductDetail{}, domain.ErrProductNotFound
		}
		return domain.ProductDetail{}, err
	}

	description := product.LocalizedDescription(ctx)
	detail := domain.ProductDetail{
		ProductSummary:  s.summary(ctx, product),
		Description:     description,
		PageDescription: truncate(description, pageDescriptionLength),
		Nutrition: domain.Nutrition{
			Calories:     product.Calories,
			TotalFat:     product.TotalFat,
			SaturatedFat: product.SaturatedFat,
			TotalCarbo:   product.TotalCarbo,
			Sugar:        product.Sugar,
			Protein:      product.Protein,
			Salt:         product.Salt,
		},
		Images:     make([]domain.ProductImage, 0, len(product.Images)),
		Alternates: make(map[string]string, len(i18n.Languages())),
		Faqs:       []domain.Faq{},
	}
	for _, img := range product.Images {
		detail.Images = append(detail.Images, domain.ProductImage{
			ID:  img.ID,
			URL: s.s3.GetPublicLinkKey(img.Image),
			Alt: img.Alt.Resolve(ctx),
		})
	}
	for _, lang := range i18n.Languages() {
		detail.Alternates[lang] = ProductPath(lang, product.Slug.In(lang))
	}

	faqs, err := s.faqs.GetActiveFaqs(ctx)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	for _, f := range faqs {
		detail.Faqs = append(detail.Faqs, domain.Faq{
			ID:       f.ID,
			Question: f.LocalizedQuestion(ctx),
			Answer:   f.LocalizedAnswer(ctx),
			IsActive: f.IsActive,
		})
	}
	return detail, nil
}

func (s *productService) GetRecentProducts(ctx context.Context, since time.Time) ([]domain.FeedItem, error) {
	products, err := s.productRepository.GetRecentProductsWithImages(ctx, since)
	if err != nil {
		return nil, err
	}

	lang := i18n.FromContext(ctx)
	items := make([]domain.FeedItem, 0, len(products))
	for _, p := range products {
		item := domain.FeedItem{
			Title:       p.LocalizedTitle(ctx),
			Description: p.LocalizedDescription(ctx),
			Link:        ProductPath(lang, p.LocalizedSlug(ctx)),
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		}
		if len(p.Images) > 0 {
			item.ImageURL = s.s3.GetPublicLinkKey(p.Images[0].Image)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *productService) GetSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error) {
	products, err := s.productRepository.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	langs := i18n.Languages()
	entries := make([]domain.SitemapEntry, 0, len(products)*len(langs))
	for _, p := range products {
		alternates := make(map[string]string, len(langs))
		for _, lang := range langs {
			alternates[lang] = ProductPath(lang, p.Slug.In(lang))
		}
		for _, lang := range langs {
			entries = append(entries, domain.SitemapEntry{
				Path:         alternates[lang],
				LastModified: p.UpdatedAt,
				Alternates:   alternates,
			})
		}
	}
	return entries, nil
}

func (s *productService) AdminGetProducts(ctx context.Context, page, limit int) ([]*entities.Product, int64, error) {
	page, limit = domain.NormalizePage(page, limit)
	return s.productRepository.GetProductsPage(ctx, page, limit)
}

func (s *productService) AdminGetProduct(ctx context.Context, id uint) (*entities.Product, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func apply(product *entities.Product, req domain.ProductRequest) {
	product.Title = entities.LocalizedText(req.Title).Clone()
	product.Description = entities.LocalizedText(req.Description).Clone()
	product.TotalFat = req.TotalFat
	product.SaturatedFat = req.SaturatedFat
	product.TotalCarbo = req.TotalCarbo
	product.Sugar = req.Sugar
	product.Protein = req.Protein
	product.Salt = req.Salt
	product.Price = req.Price
}

func (s *productService) CreateProduct(ctx context.Context, req domain.ProductRequest) (*entities.Product, error) {
	product := &entities.Product{}
	apply(product, req)
	if err := s.productRepository.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	log.Infof("product %d created with slug %s", product.ID, product.SlugDefault)
	return s.AdminGetProduct(ctx, product.ID)
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, req domain.ProductRequest) (*entities.Product, error) {
	product, err := s.AdminGetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(product, req)
	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.AdminGetProduct(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.AdminGetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}
	for _, img := range product.Images {
		if err := s.s3.DeleteFile(img.Image); err != nil {
			log.Warnf("failed to delete image %s of product %d: %v", img.Image, id, err)
		}
	}
	return nil
}

func (s *productService) UploadProductImage(ctx context.Context, id uint, req domain.ProductImageRequest) (domain.ProductImage, error) {
	if req.Image == nil {
		return domain.ProductImage{}, domain.ErrImageRequired
	}
	if _, err := s.AdminGetProduct(ctx, id); err != nil {
		return domain.ProductImage{}, err
	}

	objectKey, err := s.s3.UploadFile(uuid.NewString(), req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.ProductImage{}, err
	}

	image := &entities.ProductImage{
		ProductID: id,
		Image:     objectKey,
		Alt:       entities.LocalizedText(req.Alt).Clone(),
	}
	if err := s.productRepository.AddImage(ctx, image); err != nil {
		if delErr := s.s3.DeleteFile(objectKey); delErr != nil {
			log.Warnf("failed to clean up uploaded image %s: %v", objectKey, delErr)
		}
		return domain.ProductImage{}, err
	}
	return domain.ProductImage{
		ID:  image.ID,
		URL: s.s3.GetPublicLinkKey(objectKey),
		Alt: image.Alt.Resolve(ctx),
	}, nil
}

func (s *productService) DeleteProductImage(ctx context.Context, productID, imageID uint) error {
	image, err := s.productRepository.GetImage(ctx, productID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductImageNotFound
		}
		return err
	}
	if err := s.productRepository.DeleteImage(ctx, image); err != nil {
		return err
	}
	if err := s.s3.DeleteFile(image.Image); err != nil {
		log.Warnf("failed to delete image %s: %v", image.Image, err)
	}
	return nil
}
