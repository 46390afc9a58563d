package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/elevenlabs"
	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/tts"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the SSML tags ElevenLabs accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Tag reporting makes no provider call, so the stub is enough.
			synth := tts.New(elevenlabs.NewStubProvider(nil))
			for _, tag := range synth.SupportedTags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
