package domain

import (
	"errors"
	"mime/multipart"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetProducts      = "success get products"
	MessageSuccessGetProductDetail = "success get product detail"
	MessageSuccessCreateProduct    = "product created successfully"
	MessageSuccessUpdateProduct    = "product updated successfully"
	MessageSuccessDeleteProduct    = "product deleted successfully"

	MessageFailedGetProducts      = "failed to get products"
	MessageFailedGetProductDetail = "failed to get product detail"
	MessageFailedCreateProduct    = "failed to create product"
	MessageFailedUpdateProduct    = "failed to update product"
	MessageFailedDeleteProduct    = "failed to delete product"

	ErrProductNotFound      = errors.New("product not found")
	ErrProductImageNotFound = errors.New("product image not found")
)

type (
	ProductRequest struct {
		Title        map[string]string `json:"title" validate:"required,default_lang"`
		Description  map[string]string `json:"description" validate:"required,default_lang"`
		TotalFat     *decimal.Decimal  `json:"total_fat"`
		SaturatedFat *decimal.Decimal  `json:"saturated_fat"`
		TotalCarbo   *decimal.Decimal  `json:"total_carbo"`
		Sugar        *decimal.Decimal  `json:"sugar"`
		Protein      *decimal.Decimal  `json:"protein"`
		Salt         *decimal.Decimal  `json:"salt"`
		Price        *decimal.Decimal  `json:"price"`
	}

	ProductImageRequest struct {
		Image *multipart.FileHeader `form:"image"`
		Alt   map[string]string     `form:"-"`
	}

	Nutrition struct {
		Calories     *decimal.Decimal `json:"calories,omitempty"`
		TotalFat     *decimal.Decimal `json:"total_fat,omitempty"`
		SaturatedFat *decimal.Decimal `json:"saturated_fat,omitempty"`
		TotalCarbo   *decimal.Decimal `json:"total_carbo,omitempty"`
		Sugar        *decimal.Decimal `json:"sugar,omitempty"`
		Protein      *decimal.Decimal `json:"protein,omitempty"`
		Salt         *decimal.Decimal `json:"salt,omitempty"`
	}

	ProductImage struct {
		ID  uint   `json:"id"`
		URL string `json:"url"`
		Alt string `json:"alt"`
	}

	ProductSummary struct {
		ID       uint             `json:"id"`
		Title    string           `json:"title"`
		Slug     string           `json:"slug"`
		URL      string           `json:"url"`
		ImageURL string           `json:"image_url,omitempty"`
		Price    *decimal.Decimal `json:"price,omitempty"`
	}

	ProductDetail struct {
		ProductSummary
		Description     string            `json:"description"`
		PageDescription string            `json:"page_description"`
		Nutrition       Nutrition         `json:"nutrition"`
		Images          []ProductImage    `json:"images"`
		Alternates      map[string]string `json:"alternates"`
		Faqs            []Faq             `json:"faqs"`
	}
)
