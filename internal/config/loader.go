package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Loader loads configuration from environment variables. Tests can override
// Lookup to inject deterministic maps.
type Loader struct {
	Lookup func(string) (string, bool)
}

// Load retrieves the adapter configuration from environment variables and validates it.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}

	cfg := Config{
		ListenAddr: DefaultListenAddr,
	}

	if raw, ok := l.Lookup("NUPI_ADAPTER_CONFIG"); ok && strings.TrimSpace(raw) != "" {
		if err := applyJSON(raw, &cfg); err != nil {
			return Config{}, err
		}
	}

	overrideString(l.Lookup, "NUPI_ADAPTER_LISTEN_ADDR", &cfg.ListenAddr)
	overrideString(l.Lookup, "NUPI_LOG_LEVEL", &cfg.LogLevel)
	overrideString(l.Lookup, "NUPI_ADAPTER_METRICS_ADDR", &cfg.MetricsAddr)
	if cfg.APIKey == "" {
		overrideString(l.Lookup, "ELEVENLABS_API_KEY", &cfg.APIKey)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyJSON(raw string, cfg *Config) error {
	type jsonConfig struct {
		ListenAddr         string            `json:"listen_addr"`
		APIKey             string            `json:"api_key"`
		Voice              string            `json:"voice"`
		Voices             map[string]string `json:"voices"`
		Model              string            `json:"model"`
		LogLevel           string            `json:"log_level"`
		MetricsAddr        string            `json:"metrics_addr"`
		UseStubSynthesizer *bool             `json:"use_stub_synthesizer"`
	}
	var payload jsonConfig
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("config: decode NUPI_ADAPTER_CONFIG: %w", err)
	}
	assignTrimmed(&cfg.ListenAddr, payload.ListenAddr)
	assignTrimmed(&cfg.APIKey, payload.APIKey)
	assignTrimmed(&cfg.Voice, payload.Voice)
	assignTrimmed(&cfg.Model, payload.Model)
	assignTrimmed(&cfg.LogLevel, payload.LogLevel)
	assignTrimmed(&cfg.MetricsAddr, payload.MetricsAddr)
	if len(payload.Voices) > 0 {
		cfg.Voices = make(map[string]string, len(payload.Voices))
		for name, id := range payload.Voices {
			cfg.Voices[strings.TrimSpace(name)] = strings.TrimSpace(id)
		}
	}
	if payload.UseStubSynthesizer != nil {
		cfg.UseStubSynthesizer = *payload.UseStubSynthesizer
	}
	return nil
}

func assignTrimmed(target *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*target = v
	}
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if lookup == nil || target == nil {
		return
	}
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}
