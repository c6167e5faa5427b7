package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhjanta/backend/internal/config"
)

func chatConfig(url string) *config.Config {
	return &config.Config{
		GeminiAPIKey:        "test-key",
		GeminiAPIURL:        url,
		GeminiModel:         "gemini-2.5-flash",
		GeminiFallbackModel: "gemini-1.5-flash",
		AITimeout:           5 * time.Second,
	}
}

func geminiReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "en", NormalizeLanguage("en"))
	assert.Equal(t, "hi", NormalizeLanguage("hi"))
	assert.Equal(t, "pa", NormalizeLanguage("pa"))
	assert.Equal(t, "en", NormalizeLanguage("fr"))
	assert.Equal(t, "en", NormalizeLanguage(""))
}

func TestFallbackMessage_Localized(t *testing.T) {
	assert.NotEmpty(t, FallbackMessage("en"))
	assert.NotEqual(t, FallbackMessage("en"), FallbackMessage("hi"))
	assert.NotEqual(t, FallbackMessage("en"), FallbackMessage("pa"))
	// Unsupported tags fall back to English
	assert.Equal(t, FallbackMessage("en"), FallbackMessage("de"))
}

func TestAsk_ReturnsReply(t *testing.T) {
	var gotPath string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(geminiReply("You can report a pothole from the home screen."))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	reply, err := svc.Ask("How do I report a pothole?", "en")
	require.NoError(t, err)
	assert.Equal(t, "You can report a pothole from the home screen.", reply)

	assert.Contains(t, gotPath, "gemini-2.5-flash")
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Contains(t, gotReq.SystemInstruction.Parts[0].Text, "Swachh Janta")
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "How do I report a pothole?", gotReq.Contents[0].Parts[0].Text)
}

func TestAsk_EmptyMessage(t *testing.T) {
	svc := NewChatService(chatConfig("http://unused"))
	_, err := svc.Ask("   ", "en")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAsk_MissingAPIKey(t *testing.T) {
	cfg := chatConfig("http://unused")
	cfg.GeminiAPIKey = ""
	svc := NewChatService(cfg)
	_, err := svc.Ask("hello", "en")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAsk_FallsBackToSecondModelWhenOverloaded(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "gemini-2.5-flash") {
			models = append(models, "primary")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": {"message": "The model is overloaded"}}`))
			return
		}
		models = append(models, "fallback")
		json.NewEncoder(w).Encode(geminiReply("fallback reply"))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	reply, err := svc.Ask("hello", "hi")
	require.NoError(t, err)
	assert.Equal(t, "fallback reply", reply)
	assert.Equal(t, []string{"primary", "fallback"}, models)
}

func TestAsk_TerminalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	_, err := svc.Ask("hello", "en")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAsk_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	_, err := svc.Ask("hello", "en")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAsk_UnsupportedLanguageUsesEnglishPrompt(t *testing.T) {
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(geminiReply("ok"))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	_, err := svc.Ask("hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, systemPrompts["en"], gotReq.SystemInstruction.Parts[0].Text)
}
