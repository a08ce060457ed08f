package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultDeepLURL is the translate endpoint of the DeepL free API.
const DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

type Formality string

const (
	FormalityDefault    Formality = "default"
	FormalityPreferLess Formality = "prefer_less"
	FormalityPreferMore Formality = "prefer_more"
)

var (
	ErrMissingAuthKey = errors.New("deepl auth key is not configured")
	ErrEmptyResult    = errors.New("translation provider returned no text")
)

// targetAdjustments maps bare codes to the regional variants DeepL
// requires as a target.
var targetAdjustments = map[string]string{
	"en": "en-gb",
	"pt": "pt-pt",
	"zh": "zh-hans",
}

type (
	// Provider machine-translates a single text.
	Provider interface {
		Translate(ctx context.Context, sourceLang, targetLang, text string, formality Formality) (string, error)
	}

	DeepL struct {
		authKey string
		url     string
		client  *http.Client
	}

	deeplRequest struct {
		Text       []string  `json:"text"`
		SourceLang string    `json:"source_lang"`
		TargetLang string    `json:"target_lang"`
		Formality  Formality `json:"formality,omitempty"`
	}

	deeplResponse struct {
		Translations []struct {
			DetectedSourceLanguage string `json:"detected_source_language"`
			Text                   string `json:"text"`
		} `json:"translations"`
	}
)

// NewDeepL creates a DeepL client. An empty url selects DefaultDeepLURL.
func NewDeepL(authKey, url string) *DeepL {
	if url == "" {
		url = DefaultDeepLURL
	}
	return &DeepL{
		authKey: authKey,
		url:     url,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// DeepLSource renders a language code as a DeepL source language.
func DeepLSource(lang string) string {
	return strings.ToUpper(lang)
}

// DeepLTarget renders a language code as a DeepL target language.
func DeepLTarget(lang string) string {
	if adjusted, ok := targetAdjustments[strings.ToLower(lang)]; ok {
		lang = adjusted
	}
	return strings.ToUpper(lang)
}

func (d *DeepL) Translate(ctx context.Context, sourceLang, targetLang, text string, formality Formality) (string, error) {
	if d.authKey == "" {
		return "", ErrMissingAuthKey
	}

	body, err := json.Marshal(deeplRequest{
		Text:       []string{text},
		SourceLang: DeepLSource(sourceLang),
		TargetLang: DeepLTarget(targetLang),
		Formality:  formality,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.authKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("deepl: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("deepl: decode response: %w", err)
	}
	if len(result.Translations) == 0 || result.Translations[0].Text == "" {
		return "", ErrEmptyResult
	}
	return result.Translations[0].Text, nil
}

// TranslateText translates with the informal register. On a provider error
// the fallback is returned when given, otherwise the error.
func TranslateText(ctx context.Context, p Provider, from, to, text string, fallback *string) (string, error) {
	out, err := p.Translate(ctx, from, to, text, FormalityPreferLess)
	if err != nil {
		if fallback != nil {
			return *fallback, nil
		}
		return "", err
	}
	return out, nil
}
