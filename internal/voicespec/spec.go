// Package voicespec parses compact voice specifications of the form
// `Name(key1=v1|key2=v2)` into a voice name and typed setting overrides.
package voicespec

import (
	"fmt"
	"sort"
	"strings"
)

// Known setting keys.
const (
	KeyStability       = "stability"
	KeySimilarityBoost = "similarity_boost"
	KeyStyle           = "style"
	KeySpeed           = "speed"
	KeyUseSpeakerBoost = "use_speaker_boost"
)

// Spec is a parsed voice specification.
type Spec struct {
	Name      string
	Overrides Overrides
}

// Overrides holds the settings supplied by the caller. A nil field means the
// provider default applies.
type Overrides struct {
	Stability       *float64
	SimilarityBoost *float64
	Style           *float64
	Speed           *float64
	UseSpeakerBoost *bool

	// Extra keeps unrecognised keys verbatim.
	Extra map[string]string
}

// IsEmpty reports whether no override was supplied.
func (o Overrides) IsEmpty() bool {
	return o.Stability == nil &&
		o.SimilarityBoost == nil &&
		o.Style == nil &&
		o.Speed == nil &&
		o.UseSpeakerBoost == nil &&
		len(o.Extra) == 0
}

// String renders the spec back into its compact form with keys in a stable
// order. Parse(s.String()) yields an equivalent Spec.
func (s Spec) String() string {
	params := s.Overrides.params()
	if len(params) == 0 {
		return s.Name
	}
	return s.Name + "(" + strings.Join(params, "|") + ")"
}

func (o Overrides) params() []string {
	var out []string
	addFloat := func(key string, v *float64) {
		if v != nil {
			out = append(out, fmt.Sprintf("%s=%g", key, *v))
		}
	}
	addFloat(KeyStability, o.Stability)
	addFloat(KeySimilarityBoost, o.SimilarityBoost)
	addFloat(KeyStyle, o.Style)
	addFloat(KeySpeed, o.Speed)
	if o.UseSpeakerBoost != nil {
		out = append(out, fmt.Sprintf("%s=%t", KeyUseSpeakerBoost, *o.UseSpeakerBoost))
	}

	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+o.Extra[k])
	}
	return out
}
