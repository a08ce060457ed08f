package commands

import (
	"strings"

	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils"
	"khadija-recipes/pkg/translation"

	"github.com/spf13/cobra"
)

// newProvider builds the machine translator. Tests swap it for a fake.
var newProvider = func() (translation.Provider, error) {
	key := utils.GetConfig("DEEPL_AUTH_KEY")
	if key == "" {
		return nil, translation.ErrMissingAuthKey
	}
	return translation.NewDeepL(key, utils.GetConfig("DEEPL_API_URL")), nil
}

func newTranslateMessagesCmd() *cobra.Command {
	var (
		localeDir string
		langs     string
	)

	cmd := &cobra.Command{
		Use:   "translate-messages",
		Short: "Machine-translate missing UI strings with DeepL",
		Long: `Fill untranslated and fuzzy entries of the message catalogs with DeepL.

Catalogs live in <locale-dir>/<lang>/LC_MESSAGES/messages.po. Entries with
named placeholders are left for a human translator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := newProvider()
			if err != nil {
				return err
			}
			if localeDir == "" {
				localeDir = utils.GetConfig("LOCALE_DIR")
			}

			syncer := &translation.Syncer{
				Provider:  provider,
				LocaleDir: localeDir,
				Domain:    i18n.MessageDomain,
				Languages: splitList(langs),
			}
			reports, err := syncer.Sync(cmd.Context())
			if err != nil {
				return err
			}

			for _, r := range reports {
				if r.Missing {
					continue
				}
				cmd.Printf("%s: %d translated, %d skipped\n", r.Language, r.Translated, r.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&localeDir, "locale-dir", "", "Directory with the catalogs (default LOCALE_DIR)")
	cmd.Flags().StringVar(&langs, "lang", "", "Languages to translate (comma-separated, default all)")
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
