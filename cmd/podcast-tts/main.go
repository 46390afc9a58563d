// Command podcast-tts synthesizes podcast lines through ElevenLabs from the
// command line and inspects voice specs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/adapterinfo"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "podcast-tts",
		Short:         "Synthesize podcast lines with ElevenLabs voice specs",
		Long:          "Voice specs look like Name(stability=0.5|speed=1.1); unknown keys are forwarded to the provider verbatim.",
		Version:       adapterinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newSynthesizeCmd(), newParseCmd(), newTagsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
