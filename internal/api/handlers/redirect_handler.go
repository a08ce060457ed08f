package handlers

import (
	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/pkg/page"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RedirectHandler interface {
		GetRedirects(c *fiber.Ctx) error
		CreateRedirect(c *fiber.Ctx) error
		UpdateRedirect(c *fiber.Ctx) error
		DeleteRedirect(c *fiber.Ctx) error
	}

	redirectHandler struct {
		redirectService page.RedirectService
		validator       *validator.Validate
	}
)

func NewRedirectHandler(redirectService page.RedirectService, validator *validator.Validate) RedirectHandler {
	return &redirectHandler{
		redirectService: redirectService,
		validator:       validator,
	}
}

func (h *redirectHandler) GetRedirects(c *fiber.Ctx) error {
	res, err := h.redirectService.GetRedirects(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetRedirects, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRedirects)
}

func (h *redirectHandler) CreateRedirect(c *fiber.Ctx) error {
	req := new(domain.RedirectRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.redirectService.CreateRedirect(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveRedirect, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveRedirect)
}

func (h *redirectHandler) UpdateRedirect(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRedirect, err)
	}
	req := new(domain.RedirectRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.redirectService.UpdateRedirect(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveRedirect, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveRedirect)
}

func (h *redirectHandler) DeleteRedirect(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRedirect, err)
	}
	if err := h.redirectService.DeleteRedirect(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteRedirect, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRedirect)
}
