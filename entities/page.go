package entities

import (
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils/slug"

	"gorm.io/gorm"
)

// NormalizeSlugs overwrites the slug of every supported language that has
// a title with the slugified title. Languages without a title, or whose
// title slugifies to nothing, keep whatever slug they had.
func NormalizeSlugs(title, slugs LocalizedText) LocalizedText {
	if slugs == nil {
		slugs = LocalizedText{}
	}
	for _, lang := range i18n.Languages() {
		t, ok := title[lang]
		if !ok || t == "" {
			continue
		}
		if s := slug.Make(t); s != "" {
			slugs[lang] = s
		}
	}
	return slugs
}

// UniqueSlug returns base, or base with the first free "-N" suffix, such
// that no row of model other than excludeID uses it as default slug.
func UniqueSlug(db *gorm.DB, model any, excludeID uint, base string) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		var count int64
		q := db.Session(&gorm.Session{NewDB: true}).Model(model).Where("slug_default = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, n)
	}
}

// normalizePage is the save-time slug handling shared by page entities.
func normalizePage(tx *gorm.DB, model any, id uint, title LocalizedText, slugs *LocalizedText, slugDefault *string) error {
	*slugs = NormalizeSlugs(title, *slugs)

	base := slugs.Default()
	if base == "" {
		*slugDefault = ""
		return nil
	}
	unique, err := UniqueSlug(tx, model, id, base)
	if err != nil {
		return err
	}
	(*slugs)[i18n.Default()] = unique
	*slugDefault = unique
	return nil
}
