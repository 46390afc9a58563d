// Package tts turns text plus a voice spec into audio through ElevenLabs.
//
// A call parses the voice spec, fetches the provider defaults for the voice,
// applies its overrides and issues one synthesis request. Nothing is
// cached or retried: every call makes exactly two provider round-trips.
package tts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/elevenlabs"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/telemetry"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

const (
	// DefaultModel is used when neither the caller nor WithModel picks one.
	DefaultModel = "eleven_multilingual_v2"

	instrumentationName = "github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/tts"

	readChunkSize = 4096
)

var supportedTags = []string{"lang", "p", "phoneme", "s", "sub"}

// Synthesizer is safe for concurrent use as long as its Provider is.
type Synthesizer struct {
	provider elevenlabs.Provider
	model    string
	aliases  map[string]string
	log      *slog.Logger
	metrics  *telemetry.Recorder
	tracer   trace.Tracer
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithModel sets the model used when GenerateAudio receives an empty one.
func WithModel(model string) Option {
	return func(s *Synthesizer) {
		if model != "" {
			s.model = model
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithVoiceAliases maps human voice names (as written in voice specs) to
// provider voice ids. Names without an alias are used as ids directly.
func WithVoiceAliases(aliases map[string]string) Option {
	return func(s *Synthesizer) {
		s.aliases = make(map[string]string, len(aliases))
		for name, id := range aliases {
			s.aliases[name] = id
		}
	}
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithTracerProvider sets where spans go. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Synthesizer) {
		if tp != nil {
			s.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// New returns a Synthesizer backed by provider.
func New(provider elevenlabs.Provider, opts ...Option) *Synthesizer {
	if provider == nil {
		panic("tts: provider must not be nil")
	}
	s := &Synthesizer{
		provider: provider,
		model:    DefaultModel,
		log:      slog.Default(),
		tracer:   otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewRecorder(s.log)
	}
	s.log = s.log.With("component", "tts")
	return s
}

// NewElevenLabs returns a Synthesizer talking to the ElevenLabs API with apiKey.
func NewElevenLabs(apiKey string, opts ...Option) *Synthesizer {
	return New(elevenlabs.NewClient(apiKey), opts...)
}

// Model returns the default model.
func (s *Synthesizer) Model() string {
	return s.model
}

// SupportedTags lists the SSML tags the provider accepts.
func (s *Synthesizer) SupportedTags() []string {
	return append([]string(nil), supportedTags...)
}

// ResolveVoice maps a voice name to the provider voice id.
func (s *Synthesizer) ResolveVoice(name string) string {
	if id, ok := s.aliases[name]; ok && id != "" {
		return id
	}
	return name
}

// GenerateAudio synthesizes text with the voice described by voiceSpec and
// returns the audio bytes. An empty model selects the default one.
//
// Errors are *voicespec.ParseError (no provider call was made),
// *ProviderLookupError or *ProviderSynthesisError.
func (s *Synthesizer) GenerateAudio(ctx context.Context, text, voiceSpec, model string) ([]byte, error) {
	spec, err := voicespec.Parse(voiceSpec)
	if err != nil {
		s.metrics.ParseFailed()
		return nil, err
	}
	if model == "" {
		model = s.model
	}
	voiceID := s.ResolveVoice(spec.Name)

	log := s.log.With(
		"request_id", uuid.NewString(),
		"voice", spec.Name,
		"voice_id", voiceID,
		"model", model,
	)

	ctx, span := s.tracer.Start(ctx, "tts.GenerateAudio", trace.WithAttributes(
		attribute.String("tts.voice", spec.Name),
		attribute.String("tts.voice_id", voiceID),
		attribute.String("tts.model", model),
		attribute.Int("tts.text_length", len(text)),
	))
	defer span.End()

	voice, err := s.provider.GetVoice(ctx, voiceID)
	s.metrics.VoiceLookup(err)
	if err != nil {
		log.Error("voice lookup failed", "error", err)
		return nil, fail(span, &ProviderLookupError{VoiceID: voiceID, Err: err})
	}

	var defaults elevenlabs.VoiceSettings
	if voice.Settings != nil {
		defaults = *voice.Settings
	}
	settings := EffectiveSettings(defaults, spec.Overrides)

	start := time.Now()
	audio, err := s.synthesize(ctx, voiceID, elevenlabs.SynthesizeRequest{
		Text:          text,
		ModelID:       model,
		VoiceSettings: &settings,
	})
	elapsed := time.Since(start)
	s.metrics.Synthesis(model, elapsed, len(audio), err)
	if err != nil {
		log.Error("synthesis failed", "error", err)
		return nil, fail(span, &ProviderSynthesisError{VoiceID: voiceID, Model: model, Err: err})
	}

	span.SetAttributes(attribute.Int("tts.audio_bytes", len(audio)))
	log.Debug("synthesis completed",
		"text_length", len(text),
		"bytes", len(audio),
		"overrides", !spec.Overrides.IsEmpty(),
		"duration_sec", elapsed.Seconds(),
	)
	return audio, nil
}

// synthesize drains the provider stream, keeping only non-empty reads.
func (s *Synthesizer) synthesize(ctx context.Context, voiceID string, req elevenlabs.SynthesizeRequest) ([]byte, error) {
	stream, err := s.provider.SynthesizeStream(ctx, voiceID, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	audio := []byte{}
	buf := make([]byte, readChunkSize)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			audio = append(audio, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			return audio, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
