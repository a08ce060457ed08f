package entities

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       LocalizedText `gorm:"not null" json:"title"`
	Slug        LocalizedText `gorm:"not null" json:"slug"`
	SlugDefault string        `gorm:"size:256;index;not null" json:"-"`
	Description LocalizedText `gorm:"not null" json:"description"`

	// per 100 g, grams unless noted
	Calories     *decimal.Decimal `gorm:"type:decimal(5,1)" json:"calories,omitempty"`
	TotalFat     *decimal.Decimal `gorm:"type:decimal(4,1)" json:"total_fat,omitempty"`
	SaturatedFat *decimal.Decimal `gorm:"type:decimal(4,1)" json:"saturated_fat,omitempty"`
	TotalCarbo   *decimal.Decimal `gorm:"type:decimal(4,1)" json:"total_carbo,omitempty"`
	Sugar        *decimal.Decimal `gorm:"type:decimal(4,1)" json:"sugar,omitempty"`
	Protein      *decimal.Decimal `gorm:"type:decimal(4,1)" json:"protein,omitempty"`
	Salt         *decimal.Decimal `gorm:"type:decimal(4,2)" json:"salt,omitempty"`
	Price        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price,omitempty"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	Timestamp
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Calories = ComputeCalories(p.TotalFat, p.TotalCarbo, p.Protein)
	return normalizePage(tx, &Product{}, p.ID, p.Title, &p.Slug, &p.SlugDefault)
}

// ComputeCalories returns 9*fat + 4*(carbohydrate + protein), or nil when
// any input is missing.
func ComputeCalories(fat, carbo, protein *decimal.Decimal) *decimal.Decimal {
	if fat == nil || carbo == nil || protein == nil {
		return nil
	}
	kcal := decimal.NewFromInt(9).Mul(*fat).Add(decimal.NewFromInt(4).Mul(carbo.Add(*protein)))
	return &kcal
}

func (p *Product) LocalizedTitle(ctx context.Context) string {
	return p.Title.Resolve(ctx)
}

func (p *Product) LocalizedSlug(ctx context.Context) string {
	return p.Slug.Resolve(ctx)
}

func (p *Product) LocalizedDescription(ctx context.Context) string {
	return p.Description.Resolve(ctx)
}

type ProductImage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProductID uint          `gorm:"not null;index" json:"product_id"`
	Image     string        `gorm:"size:512;not null" json:"image"`
	Alt       LocalizedText `gorm:"not null" json:"alt"`

	Timestamp
}
