package voicespec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NameOnly(t *testing.T) {
	spec, err := Parse("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", spec.Name)
	assert.True(t, spec.Overrides.IsEmpty())
}

func TestParse_FloatOverrides(t *testing.T) {
	spec, err := Parse("Bob(stability=0.5|speed=1.2)")
	require.NoError(t, err)

	assert.Equal(t, "Bob", spec.Name)
	require.NotNil(t, spec.Overrides.Stability)
	require.NotNil(t, spec.Overrides.Speed)
	assert.InDelta(t, 0.5, *spec.Overrides.Stability, 1e-9)
	assert.InDelta(t, 1.2, *spec.Overrides.Speed, 1e-9)
	assert.Nil(t, spec.Overrides.SimilarityBoost)
	assert.Nil(t, spec.Overrides.Style)
	assert.Nil(t, spec.Overrides.UseSpeakerBoost)
	assert.Empty(t, spec.Overrides.Extra)
}

func TestParse_AllKnownKeys(t *testing.T) {
	spec, err := Parse("Narrator(stability=0.1|similarity_boost=0.2|style=0.3|speed=0.9|use_speaker_boost=true)")
	require.NoError(t, err)

	o := spec.Overrides
	require.NotNil(t, o.Stability)
	require.NotNil(t, o.SimilarityBoost)
	require.NotNil(t, o.Style)
	require.NotNil(t, o.Speed)
	require.NotNil(t, o.UseSpeakerBoost)
	assert.Equal(t, 0.1, *o.Stability)
	assert.Equal(t, 0.2, *o.SimilarityBoost)
	assert.Equal(t, 0.3, *o.Style)
	assert.Equal(t, 0.9, *o.Speed)
	assert.True(t, *o.UseSpeakerBoost)
}

func TestParse_SpeakerBoost(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Yes", true},
		{"yes", true},
		{"TRUE", true},
		{"1", true},
		{"nope", false},
		{"false", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			spec, err := Parse("Carl(use_speaker_boost=" + tt.value + ")")
			require.NoError(t, err)
			require.NotNil(t, spec.Overrides.UseSpeakerBoost)
			assert.Equal(t, tt.want, *spec.Overrides.UseSpeakerBoost)
		})
	}
}

func TestParse_WhitespaceIgnored(t *testing.T) {
	spaced, err := Parse("Dana ( stability = 0.3 )")
	require.NoError(t, err)
	compact, err := Parse("Dana(stability=0.3)")
	require.NoError(t, err)

	assert.Equal(t, compact, spaced)
}

func TestParse_WhitespaceInsideValueRemoved(t *testing.T) {
	spec, err := Parse("Dana(accent=british english)")
	require.NoError(t, err)
	assert.Equal(t, "britishenglish", spec.Overrides.Extra["accent"])
}

func TestParse_PassThroughKeys(t *testing.T) {
	spec, err := Parse("Fay(loudness=0.8|mode=calm)")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"loudness": "0.8", "mode": "calm"}, spec.Overrides.Extra)
	assert.Nil(t, spec.Overrides.Stability)
}

func TestParse_ValueMayContainEquals(t *testing.T) {
	spec, err := Parse("Gus(hint=a=b)")
	require.NoError(t, err)
	assert.Equal(t, "a=b", spec.Overrides.Extra["hint"])
}

func TestParse_EmptyParameterList(t *testing.T) {
	for _, in := range []string{"Hal()", "Hal(", "Hal(|)", "Hal(||)"} {
		t.Run(in, func(t *testing.T) {
			spec, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, "Hal", spec.Name)
			assert.True(t, spec.Overrides.IsEmpty())
		})
	}
}

func TestParse_EmptyTokensSkipped(t *testing.T) {
	spec, err := Parse("Ivy(|speed=1.1||style=0|)")
	require.NoError(t, err)
	require.NotNil(t, spec.Overrides.Speed)
	require.NotNil(t, spec.Overrides.Style)
	assert.Equal(t, 1.1, *spec.Overrides.Speed)
	assert.Equal(t, 0.0, *spec.Overrides.Style)
}

func TestParse_MissingClosingParen(t *testing.T) {
	spec, err := Parse("Jon(stability=0.7")
	require.NoError(t, err)
	require.NotNil(t, spec.Overrides.Stability)
	assert.Equal(t, 0.7, *spec.Overrides.Stability)
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	spec, err := Parse("Kim(speed=1.0|speed=1.5)")
	require.NoError(t, err)
	require.NotNil(t, spec.Overrides.Speed)
	assert.Equal(t, 1.5, *spec.Overrides.Speed)
}

func TestParse_OutOfRangeValuesKept(t *testing.T) {
	spec, err := Parse("Lou(stability=7|speed=-2)")
	require.NoError(t, err)
	assert.Equal(t, 7.0, *spec.Overrides.Stability)
	assert.Equal(t, -2.0, *spec.Overrides.Speed)
}

func TestParse_NonNumericValue(t *testing.T) {
	_, err := Parse("Eve(speed=fast)")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "speed", pe.Key)
	assert.Equal(t, "fast", pe.Value)
	assert.Equal(t, "Eve(speed=fast)", pe.Spec)
	assert.Contains(t, err.Error(), "speed")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing name", "(speed=1)"},
		{"missing equals", "Max(speed)"},
		{"empty key", "Max(=1)"},
		{"empty numeric value", "Max(stability=)"},
		{"nan", "Max(style=NaN)"},
		{"inf", "Max(speed=Inf)"},
		{"trailing text", "Max(speed=1)x"},
		{"second group", "Max(speed=1)(style=1)"},
		{"nested paren", "Max(speed=(1))"},
		{"stray close in name", "Max)"},
		{"pipe in name", "Max|Min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var pe *ParseError
			assert.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
		})
	}
}

func TestSpecStringRoundTrip(t *testing.T) {
	in := "Ned(zeta=1|speed=1.25|use_speaker_boost=yes|alpha=x|stability=0.5)"
	spec, err := Parse(in)
	require.NoError(t, err)

	assert.Equal(t, "Ned(stability=0.5|speed=1.25|use_speaker_boost=true|alpha=x|zeta=1)", spec.String())

	again, err := Parse(spec.String())
	require.NoError(t, err)
	assert.Equal(t, spec, again)
}

func TestSpecStringNameOnly(t *testing.T) {
	assert.Equal(t, "Oli", Spec{Name: "Oli"}.String())
}
