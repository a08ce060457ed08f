package i18n

import (
	"context"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// MessageDomain is the gettext domain of the website's UI strings.
const MessageDomain = "messages"

// Messages translates UI strings from the PO catalogs under
// <dir>/<lang>/LC_MESSAGES/<domain>.po. Missing catalogs or entries
// pass the msgid through unchanged.
type Messages struct {
	dir    string
	domain string

	mu      sync.Mutex
	locales map[string]*gotext.Locale
}

// NewMessages creates a lazy catalog set rooted at dir.
func NewMessages(dir, domain string) *Messages {
	if domain == "" {
		domain = MessageDomain
	}
	return &Messages{
		dir:     dir,
		domain:  domain,
		locales: make(map[string]*gotext.Locale),
	}
}

// T translates msgid into the active language of ctx.
func (m *Messages) T(ctx context.Context, msgid string) string {
	if m == nil {
		return msgid
	}
	return m.locale(FromContext(ctx)).Get(msgid)
}

// N translates a message with plural forms into the active language of ctx.
func (m *Messages) N(ctx context.Context, singular, plural string, n int) string {
	if m == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return m.locale(FromContext(ctx)).GetN(singular, plural, n)
}

func (m *Messages) locale(lang string) *gotext.Locale {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.locales[lang]; ok {
		return l
	}
	l := gotext.NewLocale(m.dir, lang)
	l.AddDomain(m.domain)
	l.SetDomain(m.domain)
	m.locales[lang] = l
	return l
}
