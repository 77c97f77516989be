package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestSuffix marks literal manifest files.
const ManifestSuffix = ".obfx.yaml"

// Manifest is the on-disk shape of a *.obfx.yaml file.
type Manifest struct {
	Package  string         `yaml:"package"`
	Level    string         `yaml:"level,omitempty"`
	Profile  string         `yaml:"profile,omitempty"`
	Literals []ManifestItem `yaml:"literals"`
}

// ManifestItem is a single literal entry of a manifest.
type ManifestItem struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Value   string   `yaml:"value,omitempty"`
	Values  []string `yaml:"values,omitempty"`
	Size    int      `yaml:"size,omitempty"`
	Level   string   `yaml:"level,omitempty"`
	Profile string   `yaml:"profile,omitempty"`
}

// LoadManifest reads a manifest and resolves its literals. Each literal's
// location is the manifest path and the line its entry starts on.
func LoadManifest(path string) (SourceInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(path, data)
}

// ParseManifest is LoadManifest over already-read content.
func ParseManifest(path string, data []byte) (SourceInfo, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return SourceInfo{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	var m Manifest
	if len(root.Content) > 0 {
		if err := root.Decode(&m); err != nil {
			return SourceInfo{}, fmt.Errorf("failed to decode manifest %s: %w", path, err)
		}
	}

	lines := itemLines(&root)
	where := filepath.ToSlash(filepath.Clean(path))

	info := SourceInfo{
		PackageName: m.Package,
		SourceFile:  filepath.Base(path),
		Guarded:     true,
		Content:     data,
	}

	for i, item := range m.Literals {
		line := 0
		if i < len(lines) {
			line = lines[i]
		}

		lit := Literal{
			Name:     item.Name,
			Type:     item.Type,
			Value:    item.Value,
			Values:   item.Values,
			Size:     item.Size,
			Level:    firstNonEmpty(item.Level, m.Level),
			Profile:  firstNonEmpty(item.Profile, m.Profile),
			Location: fmt.Sprintf("%s:%d", where, line),
		}
		info.Literals = append(info.Literals, lit)
	}

	return info, nil
}

// itemLines returns the starting line of every entry of the top-level
// "literals" sequence.
func itemLines(root *yaml.Node) []int {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != "literals" {
			continue
		}
		seq := mapping.Content[i+1]
		lines := make([]int, 0, len(seq.Content))
		for _, item := range seq.Content {
			lines = append(lines, item.Line)
		}
		return lines
	}
	return nil
}

// ManifestOutputName maps "secrets.obfx.yaml" to "secrets".
func ManifestOutputName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), ManifestSuffix)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
