package integration

import "strings"

// This file provides examples and utilities for integrating obfx-gen with go generate

// Example go:generate directive for a package holding a literal manifest:
//
//   //go:generate obfx-gen generate .
//
// This seals every literal of every *.obfx.yaml file and every
// //obfx:literal constant in the package into <source>_obfx.go files.

// Reproducible builds pin the time mixed into seeds:
//
//   //go:generate obfx-gen generate -time=00:00:00 .
//
// or export SOURCE_DATE_EPOCH, which obfx-gen honours when no -time or
// OBFX_BUILD_TIME is given.

// For CI/CD environments where you want to verify literals before sealing:
//
//   //go:generate obfx-gen validate -config=obfx.yaml .
//   //go:generate obfx-gen generate -config=obfx.yaml .

// Example package using directives. The plaintext constants live in a file
// that normal builds never compile:
//
//   //go:build obfx
//
//   package secrets
//
//   //obfx:literal level=high
//   const APIToken = "s3cr3t"
//
// go generate skips files excluded by build constraints, so the
// //go:generate line goes in an unguarded file of the same package, such
// as doc.go (see ExampleGoGenerateComment). Generated secrets_obfx.go then
// declares APIToken as an obfx.Chars[byte] holding only ciphertext.

const ExampleManifest = `package: secrets
level: high
literals:
  - name: APIPort
    type: int
    value: "8443"
  - name: Endpoint
    type: string
    value: "https://api.example.com"
`

const ExampleDirectiveSource = `//go:build obfx

package secrets

//obfx:literal level=high
const APIToken = "s3cr3t"
`

const ExampleGoGenerateComment = `
// Package secrets holds sealed literals.
//
//go:generate obfx-gen generate -config=../obfx.yaml -v .
package secrets
`

// GoGenerateHelper builds obfx-gen command lines for go:generate.
type GoGenerateHelper struct {
	ConfigPath string
	Verbose    bool
	DryRun     bool
	Force      bool
	Time       string
}

// NewGoGenerateHelper creates a new helper with default settings
func NewGoGenerateHelper() *GoGenerateHelper {
	return &GoGenerateHelper{
		ConfigPath: "obfx.yaml",
	}
}

// GenerateCommand returns the obfx-gen generate command string
func (h *GoGenerateHelper) GenerateCommand(packages ...string) string {
	args := []string{"obfx-gen", "generate"}
	args = append(args, h.commonFlags()...)

	if h.DryRun {
		args = append(args, "-dry-run")
	}
	if h.Force {
		args = append(args, "-force")
	}
	if h.Time != "" {
		args = append(args, "-time="+h.Time)
	}

	return strings.Join(append(args, packageArgs(packages)...), " ")
}

// ValidateCommand returns the obfx-gen validate command string
func (h *GoGenerateHelper) ValidateCommand(packages ...string) string {
	args := []string{"obfx-gen", "validate"}
	args = append(args, h.commonFlags()...)
	return strings.Join(append(args, packageArgs(packages)...), " ")
}

// Directive renders a full //go:generate line for the generate command.
func (h *GoGenerateHelper) Directive(packages ...string) string {
	return "//go:generate " + h.GenerateCommand(packages...)
}

func (h *GoGenerateHelper) commonFlags() []string {
	var flags []string
	if h.ConfigPath != "" && h.ConfigPath != "obfx.yaml" {
		flags = append(flags, "-config="+h.ConfigPath)
	}
	if h.Verbose {
		flags = append(flags, "-v")
	}
	return flags
}

func packageArgs(packages []string) []string {
	if len(packages) == 0 {
		return []string{"."}
	}
	return packages
}
