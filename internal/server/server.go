package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	napv1 "github.com/nupi-ai/nupi/api/nap/v1"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/adapterinfo"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/config"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/tts"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

const (
	defaultSampleRate = 16000
	chunkSize         = 4096 // bytes per chunk (~128ms at 16kHz mono PCM16)

	// Request metadata keys that override the configured voice spec and model.
	MetadataVoice = "nupi.tts.voice"
	MetadataModel = "nupi.tts.model"
)

// Synthesizer is the part of tts.Synthesizer the server depends on.
type Synthesizer interface {
	GenerateAudio(ctx context.Context, text, voiceSpec, model string) ([]byte, error)
	SupportedTags() []string
}

var _ Synthesizer = (*tts.Synthesizer)(nil)

// Server implements the TextToSpeechService on top of a Synthesizer.
type Server struct {
	napv1.UnimplementedTextToSpeechServiceServer

	cfg   config.Config
	log   *slog.Logger
	synth Synthesizer
}

// New returns a new Server instance.
func New(cfg config.Config, logger *slog.Logger, synth Synthesizer) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if synth == nil {
		panic("server: synthesizer must not be nil")
	}
	return &Server{
		cfg: cfg,
		log: logger.With(
			"component", "server",
			"default_model", cfg.Model,
			"default_voice", cfg.Voice,
		),
		synth: synth,
	}
}

// StreamSynthesis synthesizes the whole utterance, then streams it back in
// fixed-size PCM chunks.
func (s *Server) StreamSynthesis(req *napv1.StreamSynthesisRequest, stream napv1.TextToSpeechService_StreamSynthesisServer) error {
	if req == nil {
		return fmt.Errorf("server: request is nil")
	}

	text := req.GetText()
	voice := pickMetadata(req.GetMetadata(), MetadataVoice, s.cfg.Voice)
	model := pickMetadata(req.GetMetadata(), MetadataModel, s.cfg.Model)

	logEntry := s.log.With(
		"session_id", req.GetSessionId(),
		"stream_id", req.GetStreamId(),
		"text_length", len(text),
		"voice", voice,
		"model", model,
	)

	if text == "" {
		logEntry.Warn("empty text in synthesis request")
		return s.sendError(stream, "text is required")
	}

	logEntry.Info("synthesis request received")

	if err := s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_STARTED, map[string]string{
		"ssml_tags": strings.Join(s.synth.SupportedTags(), ","),
	}); err != nil {
		logEntry.Error("failed to send started status", "error", err)
		return err
	}

	start := time.Now()
	audio, err := s.synth.GenerateAudio(stream.Context(), text, voice, model)
	if err != nil {
		logEntry.Error("synthesis failed", "error", err, "kind", errorKind(err))
		return s.sendError(stream, fmt.Sprintf("%s: %v", errorKind(err), err))
	}

	sequence, err := s.streamAudio(stream, audio, model, voice)
	if err != nil {
		if ctxErr := stream.Context().Err(); ctxErr != nil {
			logEntry.Info("synthesis interrupted", "reason", ctxErr)
			return s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_INTERRUPTED, map[string]string{
				"reason": ctxErr.Error(),
			})
		}
		logEntry.Error("failed to send audio chunk", "error", err, "sequence", sequence)
		return err
	}

	duration := time.Since(start)
	logEntry.Info("synthesis completed",
		"total_bytes", len(audio),
		"chunks", sequence,
		"duration_sec", duration.Seconds(),
	)

	return s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_FINISHED, map[string]string{
		"total_bytes":  fmt.Sprintf("%d", len(audio)),
		"total_chunks": fmt.Sprintf("%d", sequence),
		"duration_sec": fmt.Sprintf("%.2f", duration.Seconds()),
		"text_length":  fmt.Sprintf("%d", len(text)),
	})
}

// streamAudio sends PLAYING followed by one response per chunk and returns
// the number of chunks sent.
func (s *Server) streamAudio(stream napv1.TextToSpeechService_StreamSynthesisServer, data []byte, model, voice string) (uint64, error) {
	if err := s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_PLAYING, nil); err != nil {
		return 0, err
	}

	ctx := stream.Context()
	var sequence uint64
	for offset := 0; offset < len(data); offset += chunkSize {
		if err := ctx.Err(); err != nil {
			return sequence, err
		}

		end := min(offset+chunkSize, len(data))
		sequence++

		// PCM16 mono: two bytes per sample.
		samples := (end - offset) / 2
		chunk := &napv1.AudioChunk{
			Data:       data[offset:end],
			Sequence:   sequence,
			First:      sequence == 1,
			Last:       end == len(data),
			DurationMs: uint32((samples * 1000) / defaultSampleRate),
			Metadata:   adapterinfo.SynthesisMetadata(model, voice),
		}

		if err := stream.Send(&napv1.SynthesisResponse{
			Status: napv1.SynthesisStatus_SYNTHESIS_STATUS_PLAYING,
			Chunk:  chunk,
		}); err != nil {
			return sequence, err
		}
	}
	return sequence, nil
}

func (s *Server) sendStatus(stream napv1.TextToSpeechService_StreamSynthesisServer, status napv1.SynthesisStatus, metadata map[string]string) error {
	resp := &napv1.SynthesisResponse{
		Status:   status,
		Metadata: metadata,
	}
	return stream.Send(resp)
}

func (s *Server) sendError(stream napv1.TextToSpeechService_StreamSynthesisServer, message string) error {
	resp := &napv1.SynthesisResponse{
		Status:       napv1.SynthesisStatus_SYNTHESIS_STATUS_ERROR,
		ErrorMessage: message,
	}
	if err := stream.Send(resp); err != nil {
		return err
	}
	return fmt.Errorf("synthesis error: %s", message)
}

func pickMetadata(metadata map[string]string, key, fallback string) string {
	if v := strings.TrimSpace(metadata[key]); v != "" {
		return v
	}
	return fallback
}

// errorKind names the failing stage for logs and client-facing messages.
func errorKind(err error) string {
	var (
		parseErr  *voicespec.ParseError
		lookupErr *tts.ProviderLookupError
		synthErr  *tts.ProviderSynthesisError
	)
	switch {
	case errors.As(err, &parseErr):
		return "invalid voice spec"
	case errors.As(err, &lookupErr):
		return "voice lookup failed"
	case errors.As(err, &synthErr):
		return "synthesis failed"
	default:
		return "synthesis failed"
	}
}
