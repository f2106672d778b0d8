package stability

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

	"github.com/rs/zerolog"

	"server/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("stability: api key is required")

// ErrUnreachable wraps network-level failures (DNS, refused connection,
// timeout) so callers can distinguish them from provider rejections.
var ErrUnreachable = errors.New("stability: provider unreachable")

// StatusError reports a non-2xx provider response. The body is kept verbatim
// so it can be echoed back to the caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stability: status %d: %s", e.StatusCode, e.Body)
}

// Options configures the Stability image-to-image client.
type Options struct {
	APIKey         string
	BaseURL        string
	Engine         string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the Stability generation API.
type Client struct {
	apiKey     string
	baseURL    string
	engine     string
	httpClient *http.Client
	logger     *infra.Logger
}

// TextPrompt is one weighted prompt entry. Positive prompts carry weight +1,
// the negative prompt carries weight -1.
type TextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// GenerationPayload is the provider's image-to-image request body.
type GenerationPayload struct {
	InitImage     string       `json:"init_image"`
	InitImageMode string       `json:"init_image_mode"`
	ImageStrength float64      `json:"image_strength"`
	TextPrompts   []TextPrompt `json:"text_prompts"`
	CfgScale      float64      `json:"cfg_scale"`
	Height        int          `json:"height"`
	Width         int          `json:"width"`
	Samples       int          `json:"samples"`
	Steps         int          `json:"steps"`
	Seed          int          `json:"seed"`
}

// Artifact is one generated image in the provider response.
type Artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}

type generationResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.stability.ai"
	}
	engine := strings.TrimSpace(opts.Engine)
	if engine == "" {
		engine = "stable-diffusion-xl-1024-v1-0"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		engine:     engine,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Engine returns the configured engine identifier.
func (c *Client) Engine() string {
	return c.engine
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// ImageToImage issues one synchronous generation call and returns the
// provider's artifact list. No retries: the caller gets exactly one
// best-effort attempt per request.
func (c *Client) ImageToImage(ctx context.Context, payload GenerationPayload) ([]Artifact, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(payload.InitImage) == "" {
		return nil, errors.New("stability: init image is required")
	}

	endpoint := fmt.Sprintf("%s/v1/generation/%s/image-to-image", c.baseURL, c.engine)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("stability: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("stability: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stability: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var decoded generationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("stability: decode response: %w", err)
	}

	c.logger.Debug().
		Str("engine", c.engine).
		Int("artifacts", len(decoded.Artifacts)).
		Msg("stability: generation completed")
	return decoded.Artifacts, nil
}
