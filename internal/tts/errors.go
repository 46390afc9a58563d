package tts

import "fmt"

// ProviderLookupError is returned when the voice cannot be resolved or its
// defaults cannot be fetched.
type ProviderLookupError struct {
	VoiceID string
	Err     error
}

func (e *ProviderLookupError) Error() string {
	return fmt.Sprintf("tts: lookup voice %q: %v", e.VoiceID, e.Err)
}

func (e *ProviderLookupError) Unwrap() error { return e.Err }

// ProviderSynthesisError is returned when the synthesis call fails or its
// audio stream breaks. No partial audio accompanies it.
type ProviderSynthesisError struct {
	VoiceID string
	Model   string
	Err     error
}

func (e *ProviderSynthesisError) Error() string {
	return fmt.Sprintf("tts: synthesize with voice %q model %q: %v", e.VoiceID, e.Model, e.Err)
}

func (e *ProviderSynthesisError) Unwrap() error { return e.Err }
