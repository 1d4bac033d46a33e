package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mgnrega/server/config"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Client calls the Gemini generative-language API. It is optional: when no
// API key is configured every method returns its deterministic fallback, and
// the same holds on any upstream failure.
type Client struct {
	logger  *logrus.Logger
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimRight(cfg.Gemini.BaseURL, "/"),
		model:   cfg.Gemini.Model,
		apiKey:  cfg.Gemini.APIKey,
		client:  &http.Client{Timeout: time.Duration(cfg.Gemini.Timeout) * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("gemini client is not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

// stripFences removes the ```json fences the model wraps around structured
// answers.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// DetectLanguages asks the model for the most commonly spoken languages at a
// location. Falls back to Hindi + English.
func (c *Client) DetectLanguages(ctx context.Context, lat, lon float64, stateName, districtName string) []string {
	fallback := []string{"Hindi", "English"}

	prompt := fmt.Sprintf(`You are a linguistics expert for India. Based on the following location information:

Latitude: %f
Longitude: %f
State: %s
District: %s

Provide a JSON array of the top 2-3 most commonly spoken languages in this region (excluding English).
Return ONLY a JSON array like: ["Hindi", "Marathi"] or ["Telugu", "English", "Urdu"]

Important: Return ONLY the JSON array, no other text.`, lat, lon, stateName, districtName)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Warn("Generative language detection failed, using fallback")
		return fallback
	}

	var languages []string
	if err := json.Unmarshal([]byte(stripFences(text)), &languages); err != nil || len(languages) == 0 {
		c.logger.WithError(err).Warn("Could not parse generative language response")
		return fallback
	}
	return languages
}

// Translate renders text in the target language with a low-literacy-friendly
// tone. Falls back to the original text.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) string {
	prompt := fmt.Sprintf(`Translate the following text to %s.

Keep the tone simple and easy to understand for rural citizens with low literacy.
Use simple words and short sentences.

Text to translate: "%s"

Return ONLY the translated text, no explanations.`, targetLanguage, text)

	translated, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).WithField("language", targetLanguage).Warn("Generative translation failed, returning original text")
		return text
	}

	translated = strings.ReplaceAll(translated, "Translation:", "")
	translated = strings.ReplaceAll(translated, "Translated text:", "")
	translated = strings.Trim(strings.TrimSpace(translated), `"'`)
	if translated == "" {
		return text
	}
	return translated
}

// Explain asks the model for a plain-language explanation of one statistic.
// Falls back to the provided deterministic sentence.
func (c *Client) Explain(ctx context.Context, chartType, districtName string, data map[string]any, fallback string) string {
	payload, err := json.Marshal(data)
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Explain this MGNREGA %s data for the district "%s" to rural citizens with low literacy:

%s

Use simple words and short sentences. Return ONLY the explanation, 2-3 sentences.`, chartType, districtName, string(payload))

	text, err := c.generate(ctx, prompt)
	if err != nil || text == "" {
		if err != nil {
			c.logger.WithError(err).WithField("chart", chartType).Warn("Generative explanation failed, using template")
		}
		return fallback
	}
	return text
}

// TranslateDistrictName renders a district name in each of the given
// languages. Falls back to the English name per language.
func (c *Client) TranslateDistrictName(ctx context.Context, districtName, stateName string, languages []string) []models.RegionalName {
	fallback := make([]models.RegionalName, len(languages))
	for i, lang := range languages {
		fallback[i] = models.RegionalName{Language: lang, Name: districtName}
	}

	prompt := fmt.Sprintf(`Translate the district name "%s" in state "%s" to these languages: %s.

Return a JSON object like: {"Hindi": "जिला_नाम", "Marathi": "जिल्हा_नाव"}
Only return the JSON object, no other text.`, districtName, stateName, strings.Join(languages, ", "))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Warn("Generative district-name translation failed, using English names")
		return fallback
	}

	var translations map[string]string
	if err := json.Unmarshal([]byte(stripFences(text)), &translations); err != nil || len(translations) == 0 {
		c.logger.WithError(err).Warn("Could not parse district-name translation response")
		return fallback
	}

	names := make([]models.RegionalName, 0, len(languages))
	for _, lang := range languages {
		name, ok := translations[lang]
		if !ok || name == "" {
			name = districtName
		}
		names = append(names, models.RegionalName{Language: lang, Name: name})
	}
	return names
}
