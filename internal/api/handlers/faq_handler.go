package handlers

import (
	"khadija-recipes/domain"
	"khadija-recipes/internal/api/presenters"
	"khadija-recipes/pkg/page"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FaqHandler interface {
		GetFaqs(c *fiber.Ctx) error
		CreateFaq(c *fiber.Ctx) error
		UpdateFaq(c *fiber.Ctx) error
		DeleteFaq(c *fiber.Ctx) error
	}

	faqHandler struct {
		faqService page.FaqService
		validator  *validator.Validate
	}
)

func NewFaqHandler(faqService page.FaqService, validator *validator.Validate) FaqHandler {
	return &faqHandler{
		faqService: faqService,
		validator:  validator,
	}
}

func (h *faqHandler) GetFaqs(c *fiber.Ctx) error {
	res, err := h.faqService.AdminGetFaqs(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetFaqs, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFaqs)
}

func (h *faqHandler) CreateFaq(c *fiber.Ctx) error {
	req := new(domain.FaqRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.faqService.CreateFaq(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveFaq, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFaq)
}

func (h *faqHandler) UpdateFaq(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveFaq, err)
	}
	req := new(domain.FaqRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
	}

	res, err := h.faqService.UpdateFaq(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSaveFaq, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFaq)
}

func (h *faqHandler) DeleteFaq(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFaq, err)
	}
	if err := h.faqService.DeleteFaq(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDeleteFaq, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFaq)
}
