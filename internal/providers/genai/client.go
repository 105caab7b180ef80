package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	sdk "google.golang.org/genai"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
	"timelessme/internal/infra"
	"timelessme/internal/infra/credentials"
)

const (
	defaultModel   = "gemini-2.5-flash-image-preview"
	defaultTimeout = 2 * time.Minute
	fallbackMIME   = "image/png"
)

// Options controls how the Gemini client is configured.
type Options struct {
	// Keys resolves the API key on every call. Defaults to the
	// GEMINI_API_KEY / API_KEY environment variables.
	Keys       credentials.KeySource
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client restyles photos through a Gemini image model. It performs exactly
// one request per Transform call and never retries.
type Client struct {
	keys       credentials.KeySource
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger

	mu     sync.Mutex
	sdk    *sdk.Client
	sdkKey string
}

// NewClient constructs a Gemini client with sane defaults. No network
// access or credential check happens here.
func NewClient(opts Options) (*Client, error) {
	keys := opts.Keys
	if keys == nil {
		keys = credentials.DefaultEnvSource()
	}

	model := strings.TrimPrefix(strings.TrimSpace(opts.Model), "models/")
	if model == "" {
		model = defaultModel
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		keys:       keys,
		baseURL:    strings.TrimSpace(opts.BaseURL),
		model:      model,
		timeout:    timeout,
		httpClient: opts.HTTPClient,
		logger:     logger.With().Str("component", "genai").Str("model", model).Logger(),
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// Transform sends the photo and the decade instruction to the model and
// returns the first inline image of the response as a data URI.
func (c *Client) Transform(ctx context.Context, src imagegen.SourceImage, decade domain.Decade) (imagegen.GeneratedImage, error) {
	if !decade.Valid() {
		return imagegen.GeneratedImage{}, fmt.Errorf("genai: %w: %q", domain.ErrUnknownDecade, decade)
	}
	if len(src.Data) == 0 || !imagegen.IsImageMIME(src.MIMEType) {
		return imagegen.GeneratedImage{}, errors.New("genai: source image is empty or not an image")
	}

	key, err := c.keys.GeminiAPIKey(ctx)
	if err != nil {
		return imagegen.GeneratedImage{}, fmt.Errorf("genai: resolve api key: %w: %v", imagegen.ErrTransport, err)
	}
	if key == "" {
		return imagegen.GeneratedImage{}, fmt.Errorf("genai: %w", imagegen.ErrMissingAPIKey)
	}

	client, err := c.client(ctx, key)
	if err != nil {
		return imagegen.GeneratedImage{}, fmt.Errorf("%w: create client: %v", imagegen.ErrTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*sdk.Content{
		sdk.NewContentFromParts([]*sdk.Part{
			sdk.NewPartFromBytes(src.Data, src.MIMEType),
			sdk.NewPartFromText(imagegen.BuildInstruction(decade)),
		}, sdk.RoleUser),
	}
	config := &sdk.GenerateContentConfig{
		ResponseModalities: []string{string(sdk.ModalityImage), string(sdk.ModalityText)},
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.logger.Warn().Err(err).Str("decade", decade.String()).Dur("elapsed", time.Since(start)).Msg("genai: generate content failed")
		return imagegen.GeneratedImage{}, fmt.Errorf("%w: %v", imagegen.ErrTransport, err)
	}

	mime, data, ok := firstInlineImage(resp)
	if !ok {
		c.logger.Warn().
			Str("decade", decade.String()).
			Str("finish_reason", finishReason(resp)).
			Str("text", responseText(resp)).
			Msg("genai: response carried no image")
		return imagegen.GeneratedImage{}, fmt.Errorf("genai: %w", imagegen.ErrNoImage)
	}

	c.logger.Debug().
		Str("decade", decade.String()).
		Str("mime", mime).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("genai: generated image")

	return imagegen.GeneratedImage{
		DataURI:  imagegen.EncodeDataURI(mime, data),
		MIMEType: mime,
		Data:     data,
	}, nil
}

// client returns an SDK client for key, rebuilding it when the key changes.
func (c *Client) client(ctx context.Context, key string) (*sdk.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sdk != nil && c.sdkKey == key {
		return c.sdk, nil
	}
	cfg := &sdk.ClientConfig{
		APIKey:     key,
		Backend:    sdk.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = sdk.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := sdk.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.sdk, c.sdkKey = client, key
	return client, nil
}

func firstInlineImage(resp *sdk.GenerateContentResponse) (string, []byte, bool) {
	if resp == nil {
		return "", nil, false
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := strings.TrimSpace(part.InlineData.MIMEType)
			if mime == "" {
				mime = fallbackMIME
			}
			if !imagegen.IsImageMIME(mime) {
				continue
			}
			return mime, part.InlineData.Data, true
		}
	}
	return "", nil, false
}

func finishReason(resp *sdk.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	return string(resp.Candidates[0].FinishReason)
}

func responseText(resp *sdk.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String()
}

var _ imagegen.Transformer = (*Client)(nil)
