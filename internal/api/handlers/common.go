package handlers

import (
	"errors"

	"khadija-recipes/domain"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
)

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func parsePagination(c *fiber.Ctx) (int, int) {
	return domain.NormalizePage(
		c.QueryInt("page", domain.DefaultPage),
		c.QueryInt("limit", domain.DefaultLimit),
	)
}

// pathLanguage reports whether the :lang route parameter is a supported
// language.
func pathLanguage(c *fiber.Ctx) (string, bool) {
	lang := c.Params("lang")
	if !i18n.IsSupported(lang) {
		return "", false
	}
	c.SetUserContext(i18n.WithLanguage(c.UserContext(), lang))
	return i18n.FromContext(c.UserContext()), true
}

// localizedForm collects the <prefix>_<lang> form values of a multipart
// request into a language map.
func localizedForm(c *fiber.Ctx, prefix string) map[string]string {
	values := make(map[string]string)
	for _, lang := range i18n.Languages() {
		if v := c.FormValue(prefix + "_" + lang); v != "" {
			values[lang] = v
		}
	}
	return values
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUnitNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProductImageNotFound),
		errors.Is(err, domain.ErrFaqNotFound),
		errors.Is(err, domain.ErrRedirectNotFound),
		errors.Is(err, domain.ErrPageNotFound),
		errors.Is(err, domain.ErrUnsupportedLanguage):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrParseID),
		errors.Is(err, domain.ErrDuplicateStepNumber),
		errors.Is(err, domain.ErrDuplicateIngredient),
		errors.Is(err, domain.ErrInvalidImageKind),
		errors.Is(err, domain.ErrImageRequired),
		errors.Is(err, storage.ErrFileTypeNotAllowed):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
