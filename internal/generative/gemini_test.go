package generative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mgnrega/server/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = server.URL
	cfg.Gemini.Model = "gemini-1.5-flash"
	cfg.Gemini.Timeout = 5
	return NewClient(cfg, logger)
}

func candidateResponse(text string) generateResponse {
	var resp generateResponse
	resp.Candidates = []struct {
		Content content `json:"content"`
	}{
		{Content: content{Parts: []part{{Text: text}}}},
	}
	return resp
}

func TestClientDisabledWithoutKey(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	client := NewClient(cfg, logger)

	assert.False(t, client.Enabled())
	assert.Equal(t, []string{"Hindi", "English"},
		client.DetectLanguages(context.Background(), 13.08, 80.27, "Tamil Nadu", "Chennai"))
	assert.Equal(t, "hello", client.Translate(context.Background(), "hello", "Tamil"))
}

func TestDetectLanguages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse("```json\n[\"Tamil\", \"English\"]\n```")))
	})

	languages := client.DetectLanguages(context.Background(), 13.08, 80.27, "Tamil Nadu", "Chennai")
	assert.Equal(t, []string{"Tamil", "English"}, languages)
}

func TestDetectLanguagesMalformedFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse("not json at all")))
	})

	languages := client.DetectLanguages(context.Background(), 13.08, 80.27, "Tamil Nadu", "Chennai")
	assert.Equal(t, []string{"Hindi", "English"}, languages)
}

func TestTranslateCleansModelOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse(`Translation: "வணக்கம்"`)))
	})

	assert.Equal(t, "வணக்கம்", client.Translate(context.Background(), "Hello", "Tamil"))
}

func TestTranslateUpstreamErrorReturnsOriginal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Equal(t, "Hello", client.Translate(context.Background(), "Hello", "Tamil"))
}

func TestExplainFallsBackOnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := client.Explain(context.Background(), "employment", "Chennai",
		map[string]any{"personsDemanded": 100}, "template sentence")
	assert.Equal(t, "template sentence", got)
}

func TestTranslateDistrictName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse(`{"Tamil": "சென்னை"}`)))
	})

	names := client.TranslateDistrictName(context.Background(), "Chennai", "Tamil Nadu", []string{"Tamil", "English"})
	require.Len(t, names, 2)
	assert.Equal(t, "Tamil", names[0].Language)
	assert.Equal(t, "சென்னை", names[0].Name)
	assert.Equal(t, "Chennai", names[1].Name)
}
