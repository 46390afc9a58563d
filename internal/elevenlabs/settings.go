package elevenlabs

import "encoding/json"

// VoiceSettings carries the acoustic parameters of a voice. Nil fields are
// omitted from requests so the API falls back to its own defaults.
type VoiceSettings struct {
	Stability       *float64 `json:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
	Style           *float64 `json:"style,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`

	// Extra holds parameters the adapter has no typed field for. They are
	// sent verbatim as strings and never replace a typed field.
	Extra map[string]string `json:"-"`
}

// MarshalJSON flattens Extra into the settings object.
func (s VoiceSettings) MarshalJSON() ([]byte, error) {
	type plain VoiceSettings
	data, err := json.Marshal(plain(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}

	fields := make(map[string]any, len(s.Extra)+5)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, taken := fields[k]; taken {
			continue
		}
		fields[k] = v
	}
	return json.Marshal(fields)
}
