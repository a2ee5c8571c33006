package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrUnauthorized  = errors.New("gemini unauthorized")
	ErrUpstream      = errors.New("gemini upstream error")
	ErrEmptyResponse = errors.New("gemini empty response")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientFromEnv lee GEMINI_API_KEY y GEMINI_MODEL. Sin API key el
// cliente queda no-configurado: cada llamada falla con ErrNotConfigured
// y el motor cae a los fallbacks locales, el servicio sigue andando.
func NewClientFromEnv() *Client {
	return NewClient(Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	})
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// Formas mínimas del wire de generateContent; solo lo que usamos.
type generateRequest struct {
	SystemInstruction *wireContent     `json:"systemInstruction,omitempty"`
	Contents          []wireContent    `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generateJSON manda un prompt en modo JSON estricto y decodifica la
// respuesta en out. No recupera nada: los errores suben tal cual y el
// caller (el motor de cruza) decide el fallback.
func (c *Client) generateJSON(ctx context.Context, systemPrompt, userPrompt string, schema map[string]any, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	reqBody := generateRequest{
		Contents: []wireContent{
			{Role: "user", Parts: []wirePart{{Text: userPrompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		reqBody.SystemInstruction = &wireContent{Parts: []wirePart{{Text: systemPrompt}}}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}

	text := firstText(gr)
	if strings.TrimSpace(text) == "" {
		return ErrEmptyResponse
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: non-conformant payload: %v", ErrUpstream, err)
	}
	return nil
}

func firstText(gr generateResponse) string {
	var sb strings.Builder
	for _, cand := range gr.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		// solo el primer candidato
		break
	}
	return sb.String()
}
