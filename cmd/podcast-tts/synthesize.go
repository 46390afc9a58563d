package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/config"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/elevenlabs"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/telemetry"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/tts"
)

func newSynthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Synthesize one line of text and write the raw PCM audio",
		Example: `  podcast-tts synthesize --voice "Host(stability=0.4|speed=1.05)" --text "Welcome back." --out intro.pcm
  echo "Thanks for listening." | podcast-tts synthesize --voice Guest --voices Guest=21m00Tcm4TlvDq8ikWAM --out outro.pcm`,
		Args: cobra.NoArgs,
		RunE: runSynthesize,
	}
	cmd.Flags().String("voice", config.DefaultVoice, "Voice spec, e.g. Name(stability=0.5|speed=1.1)")
	cmd.Flags().String("model", "", "Model id (default "+tts.DefaultModel+")")
	cmd.Flags().String("text", "", "Text to synthesize; read from stdin when empty")
	cmd.Flags().StringP("out", "o", "-", "Output file, - for stdout")
	cmd.Flags().String("api-key", "", "ElevenLabs API key (default $ELEVENLABS_API_KEY)")
	cmd.Flags().StringToString("voices", nil, "Voice aliases as name=voice_id pairs")
	cmd.Flags().Bool("stub", false, "Use the deterministic stub instead of the ElevenLabs API")
	return cmd
}

func runSynthesize(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	voice, _ := flags.GetString("voice")
	model, _ := flags.GetString("model")
	text, _ := flags.GetString("text")
	out, _ := flags.GetString("out")
	apiKey, _ := flags.GetString("api-key")
	aliases, _ := flags.GetStringToString("voices")
	stub, _ := flags.GetBool("stub")
	level, _ := flags.GetString("log-level")

	logger := telemetry.NewLogger(cmd.ErrOrStderr(), level)

	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return errors.New("no text given (use --text or stdin)")
	}

	var provider elevenlabs.Provider
	if stub {
		provider = elevenlabs.NewStubProvider(logger)
	} else {
		if apiKey == "" {
			apiKey = os.Getenv("ELEVENLABS_API_KEY")
		}
		if apiKey == "" {
			return errors.New("an API key is required (--api-key or ELEVENLABS_API_KEY), or pass --stub")
		}
		provider = elevenlabs.NewClient(apiKey)
	}

	synth := tts.New(provider,
		tts.WithLogger(logger),
		tts.WithVoiceAliases(aliases),
	)

	audio, err := synth.GenerateAudio(cmd.Context(), text, voice, model)
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = cmd.OutOrStdout().Write(audio)
		return err
	}
	if err := os.WriteFile(out, audio, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("audio written", "path", out, "bytes", len(audio))
	return nil
}
