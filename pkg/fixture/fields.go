package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"

	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"
)

// fieldSet is the "fields" object of a dump record. Only keys present in
// the record are applied, so a partial record updates partially.
type fieldSet map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decode unmarshals key into dst when the record carries it.
func (f fieldSet) decode(key string, dst any) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	return nil
}

// str is like decode for plain strings, treating null as empty.
func (f fieldSet) str(key string, dst *string) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	if isNull(raw) {
		*dst = ""
		return nil
	}
	return f.decode(key, dst)
}

// text merges the <attr>_<lang> columns into dst. A bare <attr> key is
// used for the default language when its own column is absent.
func (f fieldSet) text(attr string, dst *entities.LocalizedText) error {
	out := dst.Clone()
	def := i18n.Default()

	set := func(lang, key string) error {
		raw, ok := f[key]
		if !ok {
			return nil
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		if v == nil {
			out = out.Set(lang, "")
		} else {
			out = out.Set(lang, *v)
		}
		return nil
	}

	if _, ok := f[attr+"_"+def]; !ok {
		if err := set(def, attr); err != nil {
			return err
		}
	}
	for _, lang := range i18n.Languages() {
		if err := set(lang, attr+"_"+lang); err != nil {
			return err
		}
	}
	*dst = out
	return nil
}

// defaultText returns the default-language value of attr, or "".
func (f fieldSet) defaultText(attr string) string {
	var t entities.LocalizedText
	if err := f.text(attr, &t); err != nil {
		return ""
	}
	return t.Default()
}
