package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hengadev/obfx"
	"github.com/hengadev/obfx/internal/codegen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "generate":
		generateCommand(os.Args[2:])
	case "validate":
		validateCommand(os.Args[2:])
	case "init":
		initCommand(os.Args[2:])
	case "version":
		versionCommand()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] [packages]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  generate  Seal literals into *_obfx.go files\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate configuration, manifests and directives\n")
	fmt.Fprintf(os.Stderr, "  init      Initialize configuration file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

func generateCommand(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", DefaultConfigPath, "Path to configuration file")
	verbose := fs.Bool("v", false, "Verbose output")
	dryRun := fs.Bool("dry-run", false, "Show what would be generated without writing files")
	force := fs.Bool("force", false, "Regenerate files whose inputs are unchanged")
	buildTime := fs.String("time", "", "Build time mixed into seeds (HH:MM:SS)")

	fs.Parse(args)

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."}
	}

	generator, err := NewGenerator(GeneratorOptions{
		ConfigPath: *configPath,
		Verbose:    *verbose,
		Force:      *force,
		Time:       *buildTime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start generator: %v\n", err)
		os.Exit(1)
	}

	if err := generator.Generate(packages, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
}

func validateCommand(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", DefaultConfigPath, "Path to configuration file")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Parse(args)

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."}
	}

	fmt.Printf("Validating configuration at %s...\n", *configPath)

	generator, err := NewGenerator(GeneratorOptions{
		ConfigPath: *configPath,
		Verbose:    *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Println("✓ Configuration is valid")
	}

	if err := generator.Validate(packages); err != nil {
		fmt.Fprintf(os.Stderr, "\nValidation failed with errors.\n")
		os.Exit(1)
	}

	fmt.Println("\n✓ All validations passed!")
}

func initCommand(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration file")

	fs.Parse(args)

	configPath := DefaultConfigPath
	if !*force {
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(os.Stderr, "Configuration file %s already exists. Use -force to overwrite.\n", configPath)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating configuration file at %s...\n", configPath)

	if err := SaveConfig(DefaultConfig(), configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create config file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration file created!")
}

func versionCommand() {
	details := obfx.FullVersionInfo()

	fmt.Printf("obfx-gen version %s\n", details)
	fmt.Println("Build-time literal obfuscation for Go")
	fmt.Println("")
	fmt.Printf("Decrypt kernel: %s\n", details.Kernel)
	fmt.Println("Literal sources: *" + codegen.ManifestSuffix + " manifests, " + codegen.Directive + " directives")

	types := codegen.SupportedTypes()
	sort.Strings(types)
	fmt.Printf("Supported types: %s and []<scalar>\n", strings.Join(types, ", "))
	fmt.Println("Levels: low, medium, high")
	fmt.Println("Profiles: standard, compact")
}
