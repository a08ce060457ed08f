package handlers

import (
	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetIngredients(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error

		GetUnits(c *fiber.Ctx) error
		CreateUnit(c *fiber.Ctx) error
		UpdateUnit(c *fiber.Ctx) error
		DeleteUnit(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService recipe.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService recipe.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.catalogService.GetIngredients(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.IngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.catalogService.CreateIngredient(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *catalogHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}
	req := new(domain.IngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.catalogService.UpdateIngredient(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *catalogHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}
	if err := h.catalogService.DeleteIngredient(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteIngredient, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *catalogHandler) GetUnits(c *fiber.Ctx) error {
	res, err := h.catalogService.GetUnits(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetUnits, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUnits)
}

func (h *catalogHandler) CreateUnit(c *fiber.Ctx) error {
	req := new(domain.UnitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.catalogService.CreateUnit(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveUnit, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateUnit)
}

func (h *catalogHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveUnit, err)
	}
	req := new(domain.UnitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.catalogService.UpdateUnit(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveUnit, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUnit)
}

func (h *catalogHandler) DeleteUnit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteUnit, err)
	}
	if err := h.catalogService.DeleteUnit(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteUnit, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUnit)
}
