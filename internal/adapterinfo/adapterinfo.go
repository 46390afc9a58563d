package adapterinfo

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plugin.yaml
var manifest []byte

// Metadata captures static identifiers for the adapter, read from the
// embedded plugin.yaml.
type Metadata struct {
	Name        string
	BinaryName  string
	Slug        string
	Description string
	GeneratorID string
	Version     string
}

// Info describes the current adapter.
var Info = mustParse(manifest)

// SynthesisMetadata produces the standard metadata payload attached to
// emitted audio chunks. voice is the voice spec as requested.
func SynthesisMetadata(model, voice string) map[string]string {
	return map[string]string{
		"generator": Info.GeneratorID,
		"model":     model,
		"voice":     voice,
	}
}

// Version returns the adapter semantic version.
func Version() string {
	return Info.Version
}

func mustParse(data []byte) Metadata {
	meta, err := parseManifest(data)
	if err != nil {
		panic(err)
	}
	return meta
}

type manifestDocument struct {
	Metadata struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
		Generator   string `yaml:"generator"`
	} `yaml:"metadata"`
	Spec struct {
		Entrypoint struct {
			Command string `yaml:"command"`
		} `yaml:"entrypoint"`
	} `yaml:"spec"`
}

func parseManifest(data []byte) (Metadata, error) {
	var doc manifestDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Metadata{}, fmt.Errorf("adapterinfo: decode manifest: %w", err)
	}

	m := doc.Metadata
	meta := Metadata{
		Name:        strings.TrimSpace(m.Name),
		Slug:        strings.TrimSpace(m.Slug),
		Description: strings.TrimSpace(m.Description),
		Version:     strings.TrimSpace(m.Version),
		GeneratorID: strings.TrimSpace(m.Generator),
		BinaryName:  strings.TrimPrefix(strings.TrimSpace(doc.Spec.Entrypoint.Command), "./"),
	}

	switch {
	case meta.Version == "":
		return Metadata{}, fmt.Errorf("adapterinfo: metadata.version missing in manifest")
	case meta.Slug == "":
		return Metadata{}, fmt.Errorf("adapterinfo: metadata.slug missing in manifest")
	}

	meta.Name = firstNonEmpty(meta.Name, meta.Slug)
	meta.Description = firstNonEmpty(meta.Description, meta.Name)
	meta.BinaryName = firstNonEmpty(meta.BinaryName, meta.Slug)
	meta.GeneratorID = firstNonEmpty(meta.GeneratorID, meta.Slug)
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
