package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nupi-ai/plugin-tts-podcast-elevenlabs/internal/voicespec"
)

type parsedSpec struct {
	Name      string         `json:"name"`
	Canonical string         `json:"canonical"`
	Overrides map[string]any `json:"overrides"`
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse SPEC",
		Short: "Parse a voice spec and print the voice name and overrides",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "text", "Output format: text, json")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	spec, err := voicespec.Parse(args[0])
	if err != nil {
		return err
	}
	out := parsedSpec{
		Name:      spec.Name,
		Canonical: spec.String(),
		Overrides: overridesMap(spec.Overrides),
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text":
		fmt.Fprintf(w, "name: %s\n", out.Name)
		keys := make([]string, 0, len(out.Overrides))
		for k := range out.Overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %v\n", k, out.Overrides[k])
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func overridesMap(o voicespec.Overrides) map[string]any {
	m := make(map[string]any)
	for k, v := range o.Extra {
		m[k] = v
	}
	setIf := func(key string, v *float64) {
		if v != nil {
			m[key] = *v
		}
	}
	setIf(voicespec.KeyStability, o.Stability)
	setIf(voicespec.KeySimilarityBoost, o.SimilarityBoost)
	setIf(voicespec.KeyStyle, o.Style)
	setIf(voicespec.KeySpeed, o.Speed)
	if o.UseSpeakerBoost != nil {
		m[voicespec.KeyUseSpeakerBoost] = *o.UseSpeakerBoost
	}
	return m
}
