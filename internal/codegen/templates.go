package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"github.com/hengadev/obfx/internal/schedule"
)

// RuntimeImport is the import path generated files depend on.
const RuntimeImport = "github.com/hengadev/obfx"

// GeneratedHeader opens every generated file.
const GeneratedHeader = "// Code generated by obfx-gen. DO NOT EDIT."

// TemplateData holds all data needed for code generation
type TemplateData struct {
	PackageName      string
	SourceFile       string
	GeneratorVersion string
	BuildID          string
	Fingerprint      string
	Kernel           bool
	Literals         []TemplateLiteral
}

// TemplateLiteral is one sealed literal as rendered.
type TemplateLiteral struct {
	Name        string
	KeyName     string
	TypeName    string
	Seed        string
	Level       string
	ProfileOpt  string
	Constructor string
	Words       []string
}

// GenerationConfig holds the options that shape generated files.
type GenerationConfig struct {
	GeneratorVersion string
	OutputSuffix     string
	Kernel           bool
}

// BuildTemplateData converts sealed literals into template data.
func BuildTemplateData(src SourceInfo, sealed []SealedLiteral, fingerprint string, config GenerationConfig) TemplateData {
	data := TemplateData{
		PackageName:      src.PackageName,
		SourceFile:       src.SourceFile,
		GeneratorVersion: config.GeneratorVersion,
		Fingerprint:      fingerprint,
		BuildID:          BuildID(fingerprint),
		Kernel:           config.Kernel,
	}

	for _, s := range sealed {
		words := make([]string, len(s.Words))
		for i, w := range s.Words {
			words[i] = fmt.Sprintf("0x%016x", w)
		}

		tl := TemplateLiteral{
			Name:        s.Name,
			KeyName:     keyVarName(s.Name),
			TypeName:    s.TypeInfo.Name,
			Seed:        fmt.Sprintf("0x%016x", s.Seed),
			Level:       "obfx." + exportedName(s.Level.String()),
			Constructor: constructor(s.TypeInfo),
			Words:       words,
		}
		if s.Profile != schedule.Standard {
			tl.ProfileOpt = ", obfx.WithProfile(obfx." + exportedName(s.Profile.String()) + ")"
		}
		data.Literals = append(data.Literals, tl)
	}

	return data
}

// OutputFileName maps a source name to its generated file name.
func OutputFileName(sourceFile, suffix string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	base := strings.TrimSuffix(sourceFile, ManifestSuffix)
	base = strings.TrimSuffix(base, ".go")
	return base + suffix + ".go"
}

func constructor(ti TypeInfo) string {
	switch ti.Shape {
	case ShapeArray:
		return "obfx.RestoreArray[" + ti.GoType + "]"
	case ShapeText:
		return "obfx.RestoreChars[" + ti.GoType + "]"
	default:
		return "obfx.Restore[" + ti.GoType + "]"
	}
}

func keyVarName(name string) string {
	return "obfxKey" + exportedName(name)
}

func exportedName(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TemplateEngine renders generated files.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine creates a new template engine with the file template
// parsed.
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("file").Parse(fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file template: %w", err)
	}
	return &TemplateEngine{templates: tmpl}, nil
}

// GenerateCode renders data and formats the result with go/format.
func (te *TemplateEngine) GenerateCode(data TemplateData) ([]byte, error) {
	if len(data.Literals) == 0 {
		return nil, fmt.Errorf("no literals to generate for %s", data.SourceFile)
	}

	var buf bytes.Buffer
	if err := te.templates.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return formatted, nil
}

const fileTemplate = GeneratedHeader + `
// Source: {{.SourceFile}}
// Generator: obfx-gen {{.GeneratorVersion}}
// Build ID: {{.BuildID}}
// Fingerprint: {{.Fingerprint}}
{{- if .Kernel}}
// Entropy: kernel
{{- end}}

package {{.PackageName}}

import "` + RuntimeImport + `"

var (
{{- range .Literals}}
	{{.KeyName}} = obfx.KeyFromSeed({{.Seed}}, {{.Level}}{{.ProfileOpt}})
{{- end}}
)

var (
{{- range .Literals}}
	// {{.Name}} holds a sealed {{.TypeName}}.
	{{.Name}} = {{.Constructor}}({{.KeyName}}{{range .Words}}, {{.}}{{end}})
{{- end}}
)
`
