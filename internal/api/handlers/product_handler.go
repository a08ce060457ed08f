package handlers

import (
	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/pkg/product"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		GetProducts(c *fiber.Ctx) error
		GetProductDetail(c *fiber.Ctx) error

		AdminGetProducts(c *fiber.Ctx) error
		AdminGetProduct(c *fiber.Ctx) error
		CreateProduct(c *fiber.Ctx) error
		UpdateProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		UploadProductImage(c *fiber.Ctx) error
		DeleteProductImage(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		validator:      validator,
	}
}

func (h *productHandler) GetProducts(c *fiber.Ctx) error {
	if _, ok := pathLanguage(c); !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProducts, domain.ErrUnsupportedLanguage)
	}

	res, err := h.productService.GetProducts(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) GetProductDetail(c *fiber.Ctx) error {
	if _, ok := pathLanguage(c); !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProductDetail, domain.ErrUnsupportedLanguage)
	}

	res, err := h.productService.GetProductDetail(c.UserContext(), c.Params("slug"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetProductDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProductDetail)
}

func (h *productHandler) AdminGetProducts(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	products, count, err := h.productService.AdminGetProducts(c.UserContext(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"products":   products,
		"pagination": domain.Pagination{Page: page, Limit: limit, Total: count},
	}, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) AdminGetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProductDetail, err)
	}

	res, err := h.productService.AdminGetProduct(c.UserContext(), id)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetProductDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProductDetail)
}

func (h *productHandler) CreateProduct(c *fiber.Ctx) error {
	req := new(domain.ProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.productService.CreateProduct(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateProduct)
}

func (h *productHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}
	req := new(domain.ProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.productService.UpdateProduct(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedUpdateProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProduct)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}

	if err := h.productService.DeleteProduct(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

// UploadProductImage reads the "image" form file and alt_<lang> form values.
func (h *productHandler) UploadProductImage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrImageRequired)
	}

	req := domain.ProductImageRequest{
		Image: file,
		Alt:   localizedForm(c, "alt"),
	}
	res, err := h.productService.UploadProductImage(c.UserContext(), id, req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}

func (h *productHandler) DeleteProductImage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}
	imageID, err := parseID(c, "image_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}

	if err := h.productService.DeleteProductImage(c.UserContext(), id, imageID); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}
