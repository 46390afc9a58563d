package tts

import (
	"maps"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/elevenlabs"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

// EffectiveSettings returns a new settings record: the provider defaults with
// every supplied override applied on top. Neither argument is modified and
// the result shares no pointers with them. Values are not range-checked.
func EffectiveSettings(defaults elevenlabs.VoiceSettings, o voicespec.Overrides) elevenlabs.VoiceSettings {
	return elevenlabs.VoiceSettings{
		Stability:       pick(o.Stability, defaults.Stability),
		SimilarityBoost: pick(o.SimilarityBoost, defaults.SimilarityBoost),
		Style:           pick(o.Style, defaults.Style),
		UseSpeakerBoost: pick(o.UseSpeakerBoost, defaults.UseSpeakerBoost),
		Speed:           pick(o.Speed, defaults.Speed),
		Extra:           mergeExtra(defaults.Extra, o.Extra),
	}
}

func pick[T any](override, fallback *T) *T {
	src := override
	if src == nil {
		src = fallback
	}
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func mergeExtra(defaults, overrides map[string]string) map[string]string {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(defaults)+len(overrides))
	maps.Copy(out, defaults)
	maps.Copy(out, overrides)
	return out
}
