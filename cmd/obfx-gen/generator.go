package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"

	"github.com/hengadev/obfx"
	"github.com/hengadev/obfx/internal/codegen"
	"github.com/hengadev/obfx/internal/monitoring"
)

// Environment overrides for the build time.
const (
	EnvBuildTime       = "OBFX_BUILD_TIME"
	EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	ConfigPath string
	Verbose    bool
	Force      bool
	Time       string // -time flag, wins over every other time source
	Output     io.Writer
	Log        io.Writer
}

// Generator handles the code generation process
type Generator struct {
	config    *Config
	opts      GeneratorOptions
	log       *monitoring.Logger
	collector *monitoring.InMemoryMetricsCollector
	metrics   *monitoring.GenerationMetrics
	now       func() time.Time
}

// NewGenerator loads the configuration and the .env file it names. A
// missing configuration file falls back to the defaults.
func NewGenerator(opts GeneratorOptions) (*Generator, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}

	log := monitoring.NewCLILogger(opts.Log, opts.Verbose, obfx.Version)

	config, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		if _, statErr := os.Stat(opts.ConfigPath); !os.IsNotExist(statErr) {
			return nil, err
		}
		log.Debug("no configuration file, using defaults", "path", opts.ConfigPath)
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadEnvFile(config.Generation.EnvFile); err != nil {
		return nil, err
	}

	collector := monitoring.NewInMemoryMetricsCollector()
	return &Generator{
		config:    config,
		opts:      opts,
		log:       log,
		collector: collector,
		metrics:   monitoring.NewGenerationMetrics(collector),
		now:       time.Now,
	}, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables already
// set in the environment.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// BuildTime returns the HH:MM:SS text mixed into every seed. The -time flag
// wins, then OBFX_BUILD_TIME, then SOURCE_DATE_EPOCH, then the configured
// time source.
func (g *Generator) BuildTime() (string, error) {
	if g.opts.Time != "" {
		return checkTime(g.opts.Time, "-time")
	}
	if env := os.Getenv(EnvBuildTime); env != "" {
		return checkTime(env, EnvBuildTime)
	}

	epoch := os.Getenv(EnvSourceDateEpoch)
	if epoch != "" {
		secs, err := strconv.ParseInt(epoch, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid %s: %w", EnvSourceDateEpoch, err)
		}
		return time.Unix(secs, 0).UTC().Format(TimeLayout), nil
	}

	switch g.config.Generation.TimeSource {
	case TimeSourceFixed:
		return g.config.Generation.FixedTime, nil
	case TimeSourceSourceDateEpoch:
		return "", fmt.Errorf("time_source is %s but %s is not set", TimeSourceSourceDateEpoch, EnvSourceDateEpoch)
	default:
		return g.now().Format(TimeLayout), nil
	}
}

func checkTime(text, origin string) (string, error) {
	if _, err := time.Parse(TimeLayout, text); err != nil {
		return "", fmt.Errorf("%s must be HH:MM:SS, got %q", origin, text)
	}
	return text, nil
}

// Generate performs code generation for the specified packages. Failures
// in one package do not stop the others; they are returned together.
func (g *Generator) Generate(packages []string, dryRun bool) error {
	buildTime, err := g.BuildTime()
	if err != nil {
		return err
	}

	g.log.Debug("starting generation",
		"packages", packages,
		"dry_run", dryRun,
		"entropy", g.config.Generation.Entropy,
	)

	engine, err := codegen.NewTemplateEngine()
	if err != nil {
		return fmt.Errorf("failed to create template engine: %w", err)
	}

	var errs errsx.Map
	for _, pkg := range packages {
		if pkgConfig, ok := g.config.Packages[pkg]; ok && pkgConfig.Skip {
			g.log.Info("skipping package", "package", pkg)
			continue
		}
		if err := g.generatePackage(engine, pkg, buildTime, dryRun); err != nil {
			g.log.Error("package failed", "package", pkg, "error", err.Error())
			errs.Set(pkg, err)
		}
	}

	if g.opts.Verbose {
		for _, line := range g.collector.Summary() {
			g.log.Info("metric", "value", line)
		}
	}

	if !errs.IsEmpty() {
		return errs.AsError()
	}
	return nil
}

func (g *Generator) generatePackage(engine *codegen.TemplateEngine, pkg, buildTime string, dryRun bool) error {
	sources, err := codegen.DiscoverLiterals(pkg, g.config.ToDiscoveryConfig())
	if err != nil {
		return fmt.Errorf("failed to discover literals: %w", err)
	}
	g.log.Debug("discovered sources", "package", pkg, "sources", len(sources))

	validator := codegen.NewLiteralValidator(g.config.Generation.AllowUnguarded)
	if err := validator.ValidateSources(sources); err != nil {
		return err
	}
	if err := validator.ValidateOutputs(sources, g.config.Generation.OutputSuffix); err != nil {
		return err
	}

	level, profile, err := g.config.BuildDefaults(pkg)
	if err != nil {
		return err
	}
	kernel := g.config.Generation.Entropy == EntropyKernel

	for _, src := range sources {
		start := time.Now()
		outputPath := filepath.Join(pkg, codegen.OutputFileName(src.SourceFile, g.config.Generation.OutputSuffix))

		fingerprint := codegen.Fingerprint(
			src.Content,
			[]byte(src.PackageName),
			[]byte(buildTime),
			[]byte(strconv.FormatBool(kernel)),
			[]byte(level.String()+"/"+profile.String()),
			[]byte(obfx.Version),
		)

		if !g.opts.Force && !dryRun {
			if existing, err := codegen.ReadFingerprint(outputPath); err == nil && existing == fingerprint {
				g.log.Debug("unchanged, skipping", "file", outputPath)
				g.metrics.FileSkipped("unchanged")
				continue
			}
		}

		sealer := codegen.NewSealer(codegen.BuildContext{
			Time:           buildTime,
			Kernel:         kernel,
			DefaultLevel:   level,
			DefaultProfile: profile,
		})

		sealed := make([]codegen.SealedLiteral, 0, len(src.Literals))
		for _, lit := range src.Literals {
			s, err := sealer.Seal(lit)
			if err != nil {
				g.log.LogFile(outputPath, 0, time.Since(start), err)
				return err
			}
			g.log.LogSealed(s.Name, s.TypeInfo.Name, s.Level.String(), s.Profile.String(), len(s.Words))
			g.metrics.Sealed(s.Level.String(), s.Profile.String(), len(s.Words))
			sealed = append(sealed, s)
		}

		data := codegen.BuildTemplateData(src, sealed, fingerprint, codegen.GenerationConfig{
			GeneratorVersion: obfx.Version,
			OutputSuffix:     g.config.Generation.OutputSuffix,
			Kernel:           kernel,
		})

		code, err := engine.GenerateCode(data)
		if err != nil {
			g.log.LogFile(outputPath, 0, time.Since(start), err)
			return fmt.Errorf("failed to generate code for %s: %w", src.SourceFile, err)
		}

		if dryRun {
			fmt.Fprintf(g.opts.Output, "Would generate: %s (%d literals)\n", outputPath, len(sealed))
			if g.log.Enabled(monitoring.LevelDebug) {
				fmt.Fprintf(g.opts.Output, "%s\n", code)
			}
			g.metrics.FileSkipped("dry_run")
			continue
		}

		if err := os.WriteFile(outputPath, code, 0644); err != nil {
			return fmt.Errorf("failed to write generated file %s: %w", outputPath, err)
		}
		g.log.LogFile(outputPath, len(sealed), time.Since(start), nil)
		g.metrics.FileWritten(time.Since(start))
	}

	return nil
}

// Validate discovers and validates literals without sealing anything, and
// reports each source on the output.
func (g *Generator) Validate(packages []string) error {
	validator := codegen.NewLiteralValidator(g.config.Generation.AllowUnguarded)

	var errs errsx.Map
	for _, pkg := range packages {
		sources, err := codegen.DiscoverLiterals(pkg, g.config.ToDiscoveryConfig())
		if err != nil {
			fmt.Fprintf(g.opts.Output, "✗ %s: %v\n", pkg, err)
			errs.Set(pkg, err)
			continue
		}

		if len(sources) == 0 {
			if g.opts.Verbose {
				fmt.Fprintf(g.opts.Output, "  No literals found in %s\n", pkg)
			}
			continue
		}

		fmt.Fprintf(g.opts.Output, "Found %d sources with literals in %s:\n", len(sources), pkg)
		for _, src := range sources {
			if err := validator.ValidateSource(src); err != nil {
				fmt.Fprintf(g.opts.Output, "  ✗ %s: %v\n", src.SourceFile, err)
				errs.Set(filepath.Join(pkg, src.SourceFile), err)
				continue
			}
			fmt.Fprintf(g.opts.Output, "  ✓ %s (%d literals)\n", src.SourceFile, len(src.Literals))
			if g.opts.Verbose {
				for _, lit := range src.Literals {
					fmt.Fprintf(g.opts.Output, "      %s %s\n", lit.Name, lit.Type)
				}
			}
		}

		if err := validator.ValidateSources(sources); err != nil {
			errs.Set(pkg, err)
		} else if err := validator.ValidateOutputs(sources, g.config.Generation.OutputSuffix); err != nil {
			fmt.Fprintf(g.opts.Output, "  ✗ %v\n", err)
			errs.Set(pkg, err)
		}
	}

	if !errs.IsEmpty() {
		return errs.AsError()
	}
	return nil
}
