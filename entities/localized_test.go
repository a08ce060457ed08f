package entities_test

import (
	"context"
	"testing"

	"khadija-recipes/entities"
	"khadija-recipes/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToDefaultLanguage(t *testing.T) {
	title := entities.LocalizedText{"de": "Tajine mit Huhn", "fr": "Tajine au poulet", "en": ""}

	tests := []struct {
		lang string
		want string
	}{
		{"de", "Tajine mit Huhn"},
		{"fr", "Tajine au poulet"},
		{"en", "Tajine mit Huhn"},
		{"it", "Tajine mit Huhn"},
		{"xx", "Tajine mit Huhn"},
	}
	for _, tt := range tests {
		ctx := i18n.WithLanguage(context.Background(), tt.lang)
		assert.Equal(t, tt.want, title.Resolve(ctx), "lang %s", tt.lang)
	}
	assert.Equal(t, "Tajine mit Huhn", title.Resolve(context.Background()))
}

func TestLocalizedTextSetAndHas(t *testing.T) {
	var text entities.LocalizedText
	text = text.Set("de", "Mehl").Set("en", "Flour")
	assert.True(t, text.Has("Flour"))
	assert.Equal(t, "Mehl", text.Default())

	text = text.Set("en", "")
	assert.False(t, text.Has("Flour"))
	assert.Equal(t, "Mehl", text.In("en"))
}

func TestLocalizedTextValueAndScan(t *testing.T) {
	text := entities.LocalizedText{"de": "Salz", "fr": "Sel", "es": ""}

	v, err := text.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"de":"Salz","fr":"Sel"}`, v.(string))

	var scanned entities.LocalizedText
	require.NoError(t, scanned.Scan([]byte(`{"de":"Salz","fr":"Sel"}`)))
	assert.Equal(t, entities.LocalizedText{"de": "Salz", "fr": "Sel"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("{not json"))
}

func TestNormalizeSlugs(t *testing.T) {
	title := entities.LocalizedText{"de": "Crème brûlée", "en": "Creme Brulee"}
	slugs := entities.LocalizedText{"de": "alt", "fr": "custom-fr"}

	got := entities.NormalizeSlugs(title, slugs)
	assert.Equal(t, "creme-brulee", got["de"])
	assert.Equal(t, "creme-brulee", got["en"])
	assert.Equal(t, "custom-fr", got["fr"], "language without title keeps its slug")

	again := entities.NormalizeSlugs(title, got.Clone())
	assert.Equal(t, got, again)
}
