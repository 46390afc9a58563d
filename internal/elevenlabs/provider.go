package elevenlabs

import (
	"context"
	"io"
)

// Provider abstracts the two ElevenLabs calls the synthesizer depends on so
// that it can be tested with a mock implementation.
type Provider interface {
	GetVoice(ctx context.Context, voiceID string) (Voice, error)
	SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error)
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = (*StubProvider)(nil)
)
