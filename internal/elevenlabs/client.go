package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// BaseURL is the ElevenLabs API base URL.
	BaseURL = "https://api.elevenlabs.io/v1"

	// DefaultTimeout for HTTP requests (can be overridden per-request).
	DefaultTimeout = 30 * time.Second

	// OutputFormat requested from the streaming endpoint: PCM 16-bit mono at 16 kHz.
	OutputFormat = "pcm_16000"

	maxErrorBody = 4096
)

// Client wraps HTTP calls to the ElevenLabs API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient constructs an ElevenLabs API client with the provided API key.
// Outgoing requests are traced through otelhttp.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey:  apiKey,
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice is the subset of the voice resource the adapter needs.
type Voice struct {
	VoiceID  string         `json:"voice_id"`
	Name     string         `json:"name"`
	Settings *VoiceSettings `json:"settings"`
}

// SynthesizeRequest describes a TTS synthesis request.
type SynthesizeRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

// GetVoice fetches a voice together with its default settings.
func (c *Client) GetVoice(ctx context.Context, voiceID string) (Voice, error) {
	if voiceID == "" {
		return Voice{}, fmt.Errorf("elevenlabs: voice_id is required")
	}

	endpoint := fmt.Sprintf("%s/voices/%s?with_settings=true", c.baseURL, url.PathEscape(voiceID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Voice{}, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Voice{}, fmt.Errorf("elevenlabs: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Voice{}, newAPIError(resp)
	}

	var voice Voice
	if err := json.NewDecoder(resp.Body).Decode(&voice); err != nil {
		return Voice{}, fmt.Errorf("elevenlabs: decode voice: %w", err)
	}
	if voice.VoiceID == "" {
		voice.VoiceID = voiceID
	}
	return voice, nil
}

// SynthesizeStream calls the ElevenLabs streaming TTS endpoint and returns an io.ReadCloser
// streaming the audio data. The caller must close the reader when done.
// Audio is returned as PCM 16-bit signed little-endian mono at 16000Hz.
func (c *Client) SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s/stream?output_format=%s", c.baseURL, url.PathEscape(voiceID), OutputFormat)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: http request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}

	return resp.Body, nil
}
