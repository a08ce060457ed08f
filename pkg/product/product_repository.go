package product

import (
	"context"
	"encoding/json"
	"time"

	"khadija-recipes/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProductRepository interface {
		CreateProduct(ctx context.Context, product *entities.Product) error
		UpdateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id uint) error
		GetProductByID(ctx context.Context, id uint) (*entities.Product, error)
		GetProductBySlug(ctx context.Context, slug string) (*entities.Product, error)
		GetProducts(ctx context.Context) ([]*entities.Product, error)
		GetProductsPage(ctx context.Context, page, limit int) ([]*entities.Product, int64, error)
		GetRecentProductsWithImages(ctx context.Context, since time.Time) ([]*entities.Product, error)
		AddImage(ctx context.Context, image *entities.ProductImage) error
		GetImage(ctx context.Context, productID, imageID uint) (*entities.ProductImage, error)
		DeleteImage(ctx context.Context, image *entities.ProductImage) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}

func (r *productRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uint) (*entities.Product, error) {
	var product entities.Product
	if err := withImages(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug matches slug in any language, preferring the default one.
func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*entities.Product, error) {
	quoted, err := json.Marshal(slug)
	if err != nil {
		return nil, err
	}

	var candidates []entities.Product
	err = r.db.WithContext(ctx).
		Select("id", "slug", "slug_default").
		Where("slug_default = ? OR slug LIKE ?", slug, "%"+string(quoted)+"%").
		Order("id asc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var id uint
	for _, c := range candidates {
		if c.SlugDefault == slug {
			id = c.ID
			break
		}
		if id == 0 && c.Slug.Has(slug) {
			id = c.ID
		}
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProductByID(ctx, id)
}

func (r *productRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	err := withImages(r.db.WithContext(ctx)).
		Order("created_at desc, id desc").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetProductsPage(ctx context.Context, page, limit int) ([]*entities.Product, int64, error) {
	var products []*entities.Product
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Product{}).Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := withImages(query).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at desc, id desc").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

// GetRecentProductsWithImages returns products created after since that
// have at least one image.
func (r *productRepository) GetRecentProductsWithImages(ctx context.Context, since time.Time) ([]*entities.Product, error) {
	var products []*entities.Product
	err := withImages(r.db.WithContext(ctx)).
		Where("created_at >= ?", since).
		Where("EXISTS (SELECT 1 FROM product_images WHERE product_images.product_id = products.id)").
		Order("created_at desc, id desc").
		Find(&products).Error
	return products, err
}

func (r *productRepository) AddImage(ctx context.Context, image *entities.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepository) GetImage(ctx context.Context, productID, imageID uint) (*entities.ProductImage, error) {
	var image entities.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&image, imageID).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepository) DeleteImage(ctx context.Context, image *entities.ProductImage) error {
	return r.db.WithContext(ctx).Delete(image).Error
}
