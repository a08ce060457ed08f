package middleware

import (
	"strings"

	"khadija-recipes/internal/i18n"

	"github.com/gofiber/fiber/v2"
)

const (
	LanguageLocal  = "lang"
	LanguageCookie = "lang"
	LanguageQuery  = "lang"
)

// LanguageMiddleware picks the active language from the path prefix, the
// lang query parameter, the lang cookie, then Accept-Language.
func (m *middleware) LanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := ResolveLanguage(c)
		ctx := i18n.WithLanguage(c.UserContext(), lang)
		c.SetUserContext(ctx)
		c.Locals(LanguageLocal, i18n.FromContext(ctx))
		c.Set(fiber.HeaderContentLanguage, i18n.FromContext(ctx))
		return c.Next()
	}
}

func ResolveLanguage(c *fiber.Ctx) string {
	if seg := firstSegment(c.Path()); seg != "" && i18n.IsSupported(seg) {
		return seg
	}
	if q := c.Query(LanguageQuery); q != "" && i18n.IsSupported(q) {
		return q
	}
	if ck := c.Cookies(LanguageCookie); ck != "" && i18n.IsSupported(ck) {
		return ck
	}
	return i18n.Match(c.Get(fiber.HeaderAcceptLanguage))
}

// Language returns the language stored by LanguageMiddleware.
func Language(c *fiber.Ctx) string {
	if lang, ok := c.Locals(LanguageLocal).(string); ok && lang != "" {
		return lang
	}
	return i18n.FromContext(c.UserContext())
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return path
}
