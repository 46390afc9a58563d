package config

import (
	"errors"
	"testing"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

func validBase() Config {
	return Config{
		ListenAddr: "127.0.0.1:50051",
		APIKey:     "test-key",
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := validBase()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Voice != DefaultVoice {
		t.Errorf("Voice = %q, want %q", cfg.Voice, DefaultVoice)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := Config{ListenAddr: "127.0.0.1:50051"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api_key")
	}
}

func TestValidateRequiresListenAddr(t *testing.T) {
	cfg := Config{APIKey: "k"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing listen address")
	}
}

func TestValidateStubSkipsAPIKey(t *testing.T) {
	cfg := Config{
		ListenAddr:         "127.0.0.1:50051",
		UseStubSynthesizer: true,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error when UseStubSynthesizer=true and APIKey empty, got: %v", err)
	}
}

func TestValidateVoiceSpec(t *testing.T) {
	tests := []struct {
		voice   string
		wantErr bool
	}{
		{"Host", false},
		{"Host(stability=0.4|speed=1.05)", false},
		{"Host(use_speaker_boost=maybe)", false},
		{"Host(speed=fast)", true},
		{"(speed=1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.voice, func(t *testing.T) {
			cfg := validBase()
			cfg.Voice = tt.voice
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Voice=%q: err=%v, wantErr=%v", tt.voice, err, tt.wantErr)
			}
			var pe *voicespec.ParseError
			if tt.wantErr && !errors.As(err, &pe) {
				t.Errorf("err = %v, want wrapped *voicespec.ParseError", err)
			}
		})
	}
}

func TestValidateVoiceAliases(t *testing.T) {
	cfg := validBase()
	cfg.Voices = map[string]string{"Host": ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for alias without id")
	}

	cfg.Voices = map[string]string{"Host": "UgBBYS2sOqTuMpoF3BR0"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
