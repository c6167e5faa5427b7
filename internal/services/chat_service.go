package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/swachhjanta/backend/internal/config"
)

var ErrUpstreamUnavailable = errors.New("assistant service unavailable")

// DefaultLanguage is used when the requested language tag is not supported.
const DefaultLanguage = "en"

var supportedLanguages = map[string]bool{"en": true, "hi": true, "pa": true}

// NormalizeLanguage maps an arbitrary tag onto the supported set, falling
// back to English.
func NormalizeLanguage(lang string) string {
	if supportedLanguages[lang] {
		return lang
	}
	return DefaultLanguage
}

var systemPrompts = map[string]string{
	"en": `You are a helpful assistant for "Swachh Janta", a civic issue reporting application.
You help users with reporting civic issues such as drainage problems, potholes, exposed wires, garbage and broken street lights, with general information about civic services, and with finding their way around the app.
Be friendly, concise and helpful. Keep responses under 200 words. Always respond in English.`,
	"hi": `आप "स्वच्छ जनता" नामक नागरिक समस्या रिपोर्टिंग ऐप के लिए एक सहायक हैं।
आप जल निकासी, गड्ढों, खुले तारों, कचरे और खराब स्ट्रीट लाइट जैसी नागरिक समस्याओं की रिपोर्ट करने, नागरिक सेवाओं की सामान्य जानकारी और ऐप के उपयोग में मदद करते हैं।
मित्रवत, संक्षिप्त और सहायक रहें। उत्तर 200 शब्दों के अंदर रखें। हमेशा हिंदी में उत्तर दें।`,
	"pa": `ਤੁਸੀਂ "ਸਵੱਛ ਜਨਤਾ" ਨਾਮਕ ਨਾਗਰਿਕ ਸਮੱਸਿਆ ਰਿਪੋਰਟਿੰਗ ਐਪ ਲਈ ਇੱਕ ਸਹਾਇਕ ਹੋ।
ਤੁਸੀਂ ਨਿਕਾਸੀ, ਟੋਇਆਂ, ਨੰਗੀਆਂ ਤਾਰਾਂ, ਕੂੜੇ ਅਤੇ ਖਰਾਬ ਸਟ੍ਰੀਟ ਲਾਈਟਾਂ ਵਰਗੀਆਂ ਸਮੱਸਿਆਵਾਂ ਦੀ ਰਿਪੋਰਟ ਕਰਨ, ਨਾਗਰਿਕ ਸੇਵਾਵਾਂ ਦੀ ਆਮ ਜਾਣਕਾਰੀ ਅਤੇ ਐਪ ਦੀ ਵਰਤੋਂ ਵਿੱਚ ਮਦਦ ਕਰਦੇ ਹੋ।
ਮਿਤਰਵਤ, ਸੰਖੇਪ ਅਤੇ ਸਹਾਇਕ ਰਹੋ। ਜਵਾਬ 200 ਸ਼ਬਦਾਂ ਦੇ ਅੰਦਰ ਰੱਖੋ। ਹਮੇਸ਼ਾ ਪੰਜਾਬੀ ਵਿੱਚ ਜਵਾਬ ਦਿਓ।`,
}

var fallbackMessages = map[string]string{
	"en": "I'm experiencing technical difficulties. Please try again later.",
	"hi": "मुझे तकनीकी समस्या आ रही है। कृपया बाद में पुनः प्रयास करें।",
	"pa": "ਮੈਨੂੰ ਤਕਨੀਕੀ ਸਮੱਸਿਆ ਆ ਰਹੀ ਹੈ। ਕਿਰਪਾ ਕਰਕੇ ਬਾਅਦ ਵਿੱਚ ਦੁਬਾਰਾ ਕੋਸ਼ਿਸ਼ ਕਰੋ।",
}

// FallbackMessage returns the language-appropriate apology substituted when
// the assistant is unreachable. Assistant failures never fail the caller's
// request.
func FallbackMessage(lang string) string {
	return fallbackMessages[NormalizeLanguage(lang)]
}

// ChatService is the gateway to the Gemini generateContent API. It is
// stateless: one request text in, one reply text out.
type ChatService struct {
	cfg    *config.Config
	client *http.Client
}

func NewChatService(cfg *config.Config) *ChatService {
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.AITimeout},
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the message to the configured model and returns the reply text.
// On an overloaded upstream it retries once with the fallback model; any
// terminal failure is reported as ErrUpstreamUnavailable.
func (s *ChatService) Ask(message, language string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", ErrValidation)
	}
	if s.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("%w: assistant not configured", ErrUpstreamUnavailable)
	}

	lang := NormalizeLanguage(language)
	reply, err := s.generate(s.cfg.GeminiModel, systemPrompts[lang], message)
	if err != nil && isOverloaded(err) {
		reply, err = s.generate(s.cfg.GeminiFallbackModel, systemPrompts[lang], message)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return reply, nil
}

type upstreamError struct {
	status int
	body   string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("assistant API error (status %d): %s", e.status, e.body)
}

func isOverloaded(err error) bool {
	var ue *upstreamError
	if errors.As(err, &ue) {
		return ue.status == http.StatusServiceUnavailable || strings.Contains(ue.body, "overloaded")
	}
	return false
}

func (s *ChatService) generate(model, systemPrompt, message string) (string, error) {
	reqBody, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: message}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.cfg.GeminiAPIURL, model, s.cfg.GeminiAPIKey)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call assistant API: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		return "", &upstreamError{status: httpResp.StatusCode, body: string(bodyBytes)}
	}

	var resp geminiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
