package codegen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardedSource = `//go:build obfx

package secrets

//obfx:literal level=high
const APIPort = 8443

const Plain = 1

//obfx:literal profile=compact
const (
	Ratio    float32 = 0.5
	Greeting         = "hi"
)

const (
	//obfx:literal
	Initial = 'A'
	Other   = 2
)

//obfx:literal level=medium
const Offset int16 = -5

func local() {
	//obfx:literal
	const hidden = 3
	_ = hidden
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "values.go", guardedSource)

	info, err := ParseSource(path)
	require.NoError(t, err)

	assert.Equal(t, "secrets", info.PackageName)
	assert.Equal(t, "values.go", info.SourceFile)
	assert.True(t, info.Guarded)

	byName := make(map[string]Literal)
	for _, lit := range info.Literals {
		byName[lit.Name] = lit
	}
	require.Len(t, byName, 5)
	assert.NotContains(t, byName, "Plain")
	assert.NotContains(t, byName, "Other")
	assert.NotContains(t, byName, "hidden", "only package-level constants are discovered")

	where := filepath.ToSlash(path)

	port := byName["APIPort"]
	assert.Equal(t, "int", port.Type)
	assert.Equal(t, "8443", port.Value)
	assert.Equal(t, "high", port.Level)
	assert.Equal(t, where+":6", port.Location)

	ratio := byName["Ratio"]
	assert.Equal(t, "float32", ratio.Type)
	assert.Equal(t, "0.5", ratio.Value)
	assert.Equal(t, "compact", ratio.Profile)

	greeting := byName["Greeting"]
	assert.Equal(t, "string", greeting.Type)
	assert.Equal(t, "hi", greeting.Value)
	assert.Equal(t, "compact", greeting.Profile, "group directive applies to every constant in the group")

	initial := byName["Initial"]
	assert.Equal(t, "rune", initial.Type)
	assert.Equal(t, "65", initial.Value)
	assert.Equal(t, where+":18", initial.Location)

	offset := byName["Offset"]
	assert.Equal(t, "int16", offset.Type)
	assert.Equal(t, "-5", offset.Value)
	assert.Equal(t, "medium", offset.Level)
}

func TestParseSource_Unguarded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "plain.go", `package secrets

//obfx:literal
const Token = "abc"
`)

	info, err := ParseSource(path)
	require.NoError(t, err)
	assert.False(t, info.Guarded)
	require.Len(t, info.Literals, 1)
}

func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name: "expression value",
			source: `package p
//obfx:literal
const X = 1 + 2
`,
		},
		{
			name: "unknown option",
			source: `package p
//obfx:literal strength=high
const X = 1
`,
		},
		{
			name: "malformed option",
			source: `package p
//obfx:literal high
const X = 1
`,
		},
		{
			name: "implicit iota value",
			source: `package p
const (
	A = iota
	//obfx:literal
	B
)
`,
		},
		{
			name: "qualified type",
			source: `package p
import "time"
//obfx:literal
const D time.Duration = 5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.go", tt.source)
			_, err := ParseSource(path)
			assert.Error(t, err)
		})
	}
}

func TestParseSource_DirectivePrefixOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.go", `package p

//obfx:literally not a directive
const X = 1
`)

	info, err := ParseSource(path)
	require.NoError(t, err)
	assert.Empty(t, info.Literals)
}

func TestDiscoverLiterals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "values.go", guardedSource)
	writeFile(t, dir, "doc.go", "// Package secrets holds sealed values.\npackage secrets\n")
	writeFile(t, dir, "values_obfx.go", "package secrets\n\n//obfx:literal\nconst Ignored = 1\n")
	writeFile(t, dir, "values_test.go", "package secrets\n\n//obfx:literal\nconst InTest = 1\n")
	writeFile(t, dir, "keys.obfx.yaml", `literals:
  - name: Salt
    type: "[]byte"
    values: ["1", "2"]
`)
	writeFile(t, dir, "empty.obfx.yaml", "package: secrets\n")

	sources, err := DiscoverLiterals(dir, nil)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "keys.obfx.yaml", sources[0].SourceFile)
	assert.Equal(t, "secrets", sources[0].PackageName, "manifest without package takes the Go package")
	require.Len(t, sources[0].Literals, 1)
	assert.Equal(t, "Salt", sources[0].Literals[0].Name)

	assert.Equal(t, "values.go", sources[1].SourceFile)
	assert.Len(t, sources[1].Literals, 5)
}

func TestDiscoverLiterals_ManifestOnlyDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-secrets")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, dir, "a.obfx.yaml", "literals:\n  - name: A\n    type: int\n    value: \"1\"\n")

	sources, err := DiscoverLiterals(dir, &DiscoveryConfig{})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "mysecrets", sources[0].PackageName)

	sources, err = DiscoverLiterals(dir, &DiscoveryConfig{PackageName: "vault"})
	require.NoError(t, err)
	assert.Equal(t, "vault", sources[0].PackageName)
}

func TestDiscoverLiterals_SkipPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "values.go", guardedSource)

	sources, err := DiscoverLiterals(dir, &DiscoveryConfig{SkipPackages: []string{dir}})
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestDiscoverLiterals_ReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package p\nconst = \n")
	writeFile(t, dir, "broken.obfx.yaml", "literals: [")

	_, err := DiscoverLiterals(dir, nil)
	assert.Error(t, err)
}

func TestConstantText(t *testing.T) {
	tests := []struct {
		expr string
		kind token.Token
		want string
	}{
		{"8443", token.INT, "8443"},
		{"0x1F", token.INT, "31"},
		{"-1_000", token.INT, "-1000"},
		{"-'A'", token.CHAR, "-65"},
		{"0.5", token.FLOAT, "0.5"},
		{"-(1.5e-3)", token.FLOAT, "-1.5e-3"},
		{"-0.0", token.FLOAT, "0.0"},
		{"+2.0", token.FLOAT, "2.0"},
		{"`raw`", token.STRING, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.expr)
			require.NoError(t, err)

			kind, text, err := constantText(expr)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestConstantText_NegativeZeroIsPositive(t *testing.T) {
	expr, err := parser.ParseExpr("-0.0")
	require.NoError(t, err)

	_, text, err := constantText(expr)
	require.NoError(t, err)

	ti, ok := LookupType("float64")
	require.True(t, ok)
	raw, err := ti.ParseRaw(text)
	require.NoError(t, err)
	assert.Zero(t, raw, "the sign bit must be clear")
}

func TestConstantText_Rejects(t *testing.T) {
	for _, src := range []string{`-"s"`, "a + b", "f()", "2i"} {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)

		_, _, err = constantText(expr)
		assert.Error(t, err, src)
	}
}
