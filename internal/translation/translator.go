package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"mgnrega/server/config"

	"github.com/sirupsen/logrus"
)

// languageCodes maps human-readable language names to the short codes the
// translation service understands.
var languageCodes = map[string]string{
	"Tamil":     "ta",
	"Hindi":     "hi",
	"Telugu":    "te",
	"Marathi":   "mr",
	"Bengali":   "bn",
	"Gujarati":  "gu",
	"Kannada":   "kn",
	"Malayalam": "ml",
	"Punjabi":   "pa",
	"Odia":      "or",
	"Assamese":  "as",
	"Urdu":      "ur",
	"English":   "en",
	"Konkani":   "kok",
	"Nepali":    "ne",
	"Mizo":      "lus",
}

var languageNames = map[string]string{
	"ta": "Tamil",
	"hi": "Hindi",
	"te": "Telugu",
	"mr": "Marathi",
	"bn": "Bengali",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"or": "Odia",
	"as": "Assamese",
	"ur": "Urdu",
	"en": "English",
}

// entityDecoder cleans up the HTML entity artifacts the translation service
// leaves in its output.
var entityDecoder = strings.NewReplacer(
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// Translator translates short English strings into regional languages.
// Failure is never fatal: every error path returns the original text.
type Translator struct {
	logger  *logrus.Logger
	baseURL string
	client  *http.Client
}

func NewTranslator(cfg *config.Config, logger *logrus.Logger) *Translator {
	return &Translator{
		logger:  logger,
		baseURL: cfg.Translation.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.Translation.Timeout) * time.Second},
	}
}

// LanguageCode returns the short code for a language name, or "" when the
// language is not supported.
func LanguageCode(languageName string) string {
	return languageCodes[languageName]
}

// LanguageName returns the human-readable name for a language code,
// defaulting to English.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Translate renders text in the target language. English targets, unknown
// languages, blank input, and upstream failures all return text unchanged.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) string {
	code := LanguageCode(targetLanguage)
	if code == "" {
		t.logger.WithField("language", targetLanguage).Warn("No language code for target language, returning original text")
		return text
	}
	if code == "en" || strings.TrimSpace(text) == "" {
		return text
	}

	params := url.Values{
		"q":        []string{text},
		"langpair": []string{fmt.Sprintf("en|%s", code)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL, nil)
	if err != nil {
		t.logger.WithError(err).Error("Failed to build translation request")
		return text
	}
	req.URL.RawQuery = params.Encode()

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.WithError(err).WithField("language", targetLanguage).Error("Translation request failed")
		return text
	}
	defer resp.Body.Close()

	var result myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.logger.WithError(err).WithField("language", targetLanguage).Error("Failed to parse translation response")
		return text
	}

	translated := strings.TrimSpace(result.ResponseData.TranslatedText)
	if translated == "" {
		return text
	}

	return entityDecoder.Replace(translated)
}

// TranslateBatch translates every item concurrently, preserving order and
// length. Individual failures already fall back to the original item, so the
// result always lines up with the input.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, targetLanguage string) []string {
	translated := make([]string, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			translated[i] = t.Translate(ctx, text, targetLanguage)
		}(i, text)
	}
	wg.Wait()

	return translated
}
