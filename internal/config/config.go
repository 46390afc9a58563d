package config

import (
	"fmt"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

const (
	// DefaultListenAddr is used when the adapter runner does not inject an explicit address.
	DefaultListenAddr = "127.0.0.1:50051"
	DefaultVoice      = "UgBBYS2sOqTuMpoF3BR0" // Mark
	DefaultModel      = "eleven_multilingual_v2"
	DefaultLogLevel   = "info"
)

// Config captures bootstrap configuration extracted from environment variables
// or injected JSON payload (`NUPI_ADAPTER_CONFIG`).
type Config struct {
	ListenAddr string
	APIKey     string
	Model      string
	LogLevel   string

	// Voice is the voice spec used when a request does not carry one,
	// e.g. "Host(stability=0.4|speed=1.05)".
	Voice string

	// Voices maps voice names used in specs to ElevenLabs voice ids.
	Voices map[string]string

	// MetricsAddr enables the Prometheus listener when non-empty.
	MetricsAddr string

	// UseStubSynthesizer replaces the ElevenLabs API with deterministic silence.
	UseStubSynthesizer bool
}

// Validate applies defaults and raises an error when required fields are missing.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if c.APIKey == "" && !c.UseStubSynthesizer {
		return fmt.Errorf("config: api_key is required (set in NUPI_ADAPTER_CONFIG or ELEVENLABS_API_KEY)")
	}
	if c.Voice == "" {
		c.Voice = DefaultVoice
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if _, err := voicespec.Parse(c.Voice); err != nil {
		return fmt.Errorf("config: voice: %w", err)
	}
	for name, id := range c.Voices {
		if name == "" || id == "" {
			return fmt.Errorf("config: voices: alias %q -> %q must have both a name and an id", name, id)
		}
	}

	return nil
}
