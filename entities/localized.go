package entities

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"khadija-recipes/internal/i18n"
)

// LocalizedText maps a language code to the value of one field in that
// language. The default-language entry is the fallback for every lookup.
type LocalizedText map[string]string

// Text builds a LocalizedText holding only the default-language value.
func Text(value string) LocalizedText {
	return LocalizedText{i18n.Default(): value}
}

// In returns the value for lang, or the default-language value when lang
// has none.
func (t LocalizedText) In(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[i18n.Default()]
}

// Resolve returns the value in the active language of ctx.
func (t LocalizedText) Resolve(ctx context.Context) string {
	return t.In(i18n.FromContext(ctx))
}

// Default returns the default-language value.
func (t LocalizedText) Default() string {
	return t[i18n.Default()]
}

// Set stores value for lang, allocating the map when needed. An empty
// value removes the translation.
func (t LocalizedText) Set(lang, value string) LocalizedText {
	if t == nil {
		t = LocalizedText{}
	}
	if value == "" {
		delete(t, lang)
		return t
	}
	t[lang] = value
	return t
}

// Has reports whether any language holds value.
func (t LocalizedText) Has(value string) bool {
	for _, v := range t {
		if v == value {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (t LocalizedText) Clone() LocalizedText {
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func (LocalizedText) GormDataType() string {
	return "text"
}

func (t LocalizedText) Value() (driver.Value, error) {
	clean := make(map[string]string, len(t))
	for k, v := range t {
		if v != "" {
			clean[k] = v
		}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *LocalizedText) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("localized text: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*t = LocalizedText{}
		return nil
	}

	out := LocalizedText{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("localized text: invalid json"), err)
	}
	*t = out
	return nil
}
