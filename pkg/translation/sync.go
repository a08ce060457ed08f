package translation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"khadija-recipes/internal/i18n"

	"github.com/gofiber/fiber/v2/log"
)

type (
	Syncer struct {
		Provider Provider
		// LocaleDir holds <lang>/LC_MESSAGES/<Domain>.po catalogs.
		LocaleDir string
		Domain    string
		// Languages defaults to i18n.Languages(), Source to i18n.Default().
		Languages []string
		Source    string
	}

	SyncReport struct {
		Language   string
		Path       string
		Missing    bool
		Translated int
		Skipped    int
		Written    bool
	}
)

// CatalogPath returns the PO file of lang under dir.
func CatalogPath(dir, lang, domain string) string {
	return filepath.Join(dir, lang, "LC_MESSAGES", domain+".po")
}

// hasPlaceholder reports texts with named or brace interpolation, which
// machine translation would mangle.
func hasPlaceholder(s string) bool {
	return strings.Contains(s, "%(") || strings.Contains(s, "{")
}

// Sync translates the untranslated and fuzzy entries of every non-default
// catalog from the default language. The first translation error aborts
// the run; catalogs finished before it stay written.
func (s *Syncer) Sync(ctx context.Context) ([]SyncReport, error) {
	source := s.Source
	if source == "" {
		source = i18n.Default()
	}
	langs := s.Languages
	if len(langs) == 0 {
		langs = i18n.Languages()
	}
	domain := s.Domain
	if domain == "" {
		domain = i18n.MessageDomain
	}

	var reports []SyncReport
	for _, lang := range langs {
		if strings.HasPrefix(lang, source) {
			continue
		}
		report, err := s.syncLanguage(ctx, source, lang, CatalogPath(s.LocaleDir, lang, domain))
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (s *Syncer) syncLanguage(ctx context.Context, source, lang, path string) (SyncReport, error) {
	report := SyncReport{Language: lang, Path: path}

	cat, err := ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("File not found: %s", path)
			report.Missing = true
			return report, nil
		}
		return report, err
	}

	for _, entry := range pending(cat) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if strings.TrimSpace(entry.ID) == "" {
			continue
		}
		changed, skipped, err := s.translateEntry(ctx, source, lang, entry)
		report.Skipped += skipped
		if err != nil {
			return report, fmt.Errorf("%s: %q: %w", lang, entry.ID, err)
		}
		if changed {
			report.Translated++
		}
	}

	if report.Translated == 0 {
		log.Infof("No changes in %s", path)
		return report, nil
	}
	if err := cat.WriteFile(path); err != nil {
		return report, err
	}
	report.Written = true
	log.Infof("Updated %s", path)
	return report, nil
}

// pending lists untranslated then fuzzy entries, each once.
func pending(cat *Catalog) []*Entry {
	seen := make(map[*Entry]bool)
	var out []*Entry
	for _, list := range [][]*Entry{cat.UntranslatedEntries(), cat.FuzzyEntries()} {
		for _, e := range list {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// translateEntry fills one entry. All translations are fetched before the
// entry is touched, so a failure leaves it unchanged.
func (s *Syncer) translateEntry(ctx context.Context, source, lang string, entry *Entry) (changed bool, skipped int, err error) {
	if !entry.IsPlural() {
		if hasPlaceholder(entry.ID) {
			log.Warnf("Skipping entry with variables: %s", entry.ID)
			return false, 1, nil
		}
		out, err := TranslateText(ctx, s.Provider, source, lang, entry.ID, nil)
		if err != nil {
			return false, 0, err
		}
		entry.Str = out
		entry.SetFuzzy(false)
		log.Infof("[%s] %s → %s", lang, entry.ID, out)
		return true, 0, nil
	}

	forms := make(map[int]string)
	for idx, msgid := range []string{entry.ID, entry.IDPlural} {
		if hasPlaceholder(msgid) {
			log.Warnf("Skipping entry with variables: %s", msgid)
			skipped++
			continue
		}
		out, err := TranslateText(ctx, s.Provider, source, lang, msgid, nil)
		if err != nil {
			return false, skipped, err
		}
		forms[idx] = out
	}
	if len(forms) == 0 {
		return false, skipped, nil
	}

	for len(entry.StrPlural) < 2 {
		entry.StrPlural = append(entry.StrPlural, "")
	}
	for idx, out := range forms {
		entry.StrPlural[idx] = out
		log.Infof("[%s] (plural %d) %s → %s", lang, idx, []string{entry.ID, entry.IDPlural}[idx], out)
	}
	entry.SetFuzzy(false)
	return true, skipped, nil
}
