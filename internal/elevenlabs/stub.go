package elevenlabs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// StubProvider implements Provider with fixed voice defaults and
// deterministic PCM output (silence). It is intended for CI and testing
// environments where the real ElevenLabs API is unavailable.
type StubProvider struct {
	log *slog.Logger
}

// NewStubProvider returns a stub that generates silent PCM data
// proportional to the input text length.
func NewStubProvider(logger *slog.Logger) *StubProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubProvider{log: logger.With("component", "elevenlabs_stub")}
}

// StubDefaults returns the settings every stub voice reports.
func StubDefaults() VoiceSettings {
	stability, similarity, style, speed := 0.5, 0.75, 0.0, 1.0
	boost := true
	return VoiceSettings{
		Stability:       &stability,
		SimilarityBoost: &similarity,
		Style:           &style,
		UseSpeakerBoost: &boost,
		Speed:           &speed,
	}
}

// GetVoice reports StubDefaults for any non-empty voice id.
func (s *StubProvider) GetVoice(_ context.Context, voiceID string) (Voice, error) {
	if voiceID == "" {
		return Voice{}, fmt.Errorf("elevenlabs: voice_id is required")
	}
	settings := StubDefaults()
	return Voice{VoiceID: voiceID, Name: voiceID, Settings: &settings}, nil
}

// SynthesizeStream returns an io.ReadCloser streaming deterministic silent PCM.
// The output size is len(text) * 320 bytes (320 bytes ≈ 10 ms at 16 kHz mono PCM16).
func (s *StubProvider) SynthesizeStream(_ context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	pcmLen := len(req.Text) * 320
	pcm := make([]byte, pcmLen)

	s.log.Info("stub synthesis",
		"text_length", len(req.Text),
		"voice_id", voiceID,
		"model", req.ModelID,
		"bytes", pcmLen,
	)

	return io.NopCloser(bytes.NewReader(pcm)), nil
}
