package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/lmittmann/tint"
	structgen "github.com/vivaneiona/structgen"
)

// config carries the generator knobs. Environment variables provide
// defaults; flags override.
type config struct {
	Out     string `env:"STRUCTGEN_OUT" envDefault:"outputs/structured_sft.jsonl"`
	Seed    int64  `env:"STRUCTGEN_SEED" envDefault:"42"`
	Pack    string `env:"STRUCTGEN_PACK" envDefault:"hard"`
	Verbose bool   `env:"STRUCTGEN_VERBOSE"`

	dummy structgen.DummyCounts
	hard  structgen.HardCounts
	aug   structgen.AugmentedCounts
}

func parseConfig(args []string) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.dummy = structgen.DefaultDummyCounts()
	cfg.hard = structgen.DefaultHardCounts()
	cfg.aug = structgen.DefaultAugmentedCounts()

	fs := flag.NewFlagSet("structgen", flag.ContinueOnError)
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output JSONL path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.StringVar(&cfg.Pack, "pack", cfg.Pack, "pack to build: dummy, hard or toml-aug")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")

	fs.IntVar(&cfg.dummy.JSONToXML, "n-json-to-xml", cfg.dummy.JSONToXML, "json_to_xml samples (dummy/hard)")
	fs.IntVar(&cfg.dummy.YAMLToXML, "n-yaml-to-xml", cfg.dummy.YAMLToXML, "yaml_to_xml samples (dummy)")
	fs.IntVar(&cfg.dummy.CSVToXML, "n-csv-to-xml", cfg.dummy.CSVToXML, "csv_to_xml samples (dummy)")
	fs.IntVar(&cfg.dummy.TextToXML, "n-text-to-xml", cfg.dummy.TextToXML, "text_to_xml samples (dummy)")
	fs.IntVar(&cfg.dummy.XMLToYAML, "n-xml-to-yaml", cfg.dummy.XMLToYAML, "xml_to_yaml samples (dummy/hard)")
	fs.IntVar(&cfg.dummy.JSONToTOML, "n-json-to-toml", cfg.dummy.JSONToTOML, "json_to_toml samples (dummy/toml-aug)")
	fs.IntVar(&cfg.dummy.YAMLToTOML, "n-yaml-to-toml", cfg.dummy.YAMLToTOML, "yaml_to_toml samples (dummy/toml-aug)")
	fs.IntVar(&cfg.dummy.TextToTOML, "n-text-to-toml", cfg.dummy.TextToTOML, "text_to_toml samples (dummy/hard)")
	fs.IntVar(&cfg.hard.TextToYAML, "n-text-to-yaml", cfg.hard.TextToYAML, "text_to_yaml samples (hard)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// The shared count flags feed whichever pack was selected.
	cfg.hard.JSONToXML = pick(fs, "n-json-to-xml", cfg.dummy.JSONToXML, cfg.hard.JSONToXML)
	cfg.hard.XMLToYAML = pick(fs, "n-xml-to-yaml", cfg.dummy.XMLToYAML, cfg.hard.XMLToYAML)
	cfg.hard.TextToTOML = pick(fs, "n-text-to-toml", cfg.dummy.TextToTOML, cfg.hard.TextToTOML)
	cfg.aug.JSONToTOML = pick(fs, "n-json-to-toml", cfg.dummy.JSONToTOML, cfg.aug.JSONToTOML)
	cfg.aug.YAMLToTOML = pick(fs, "n-yaml-to-toml", cfg.dummy.YAMLToTOML, cfg.aug.YAMLToTOML)
	return cfg, nil
}

// pick returns the flag value when the flag was set explicitly, and the
// pack's own default otherwise.
func pick(fs *flag.FlagSet, name string, set, fallback int) int {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			explicit = true
		}
	})
	if explicit {
		return set
	}
	return fallback
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	b := structgen.NewBuilder(structgen.WithLogger(logger))

	var samples []structgen.Sample
	var err error
	switch cfg.Pack {
	case "dummy":
		samples, err = b.DummyPack(ctx, cfg.Seed, cfg.dummy)
	case "hard":
		samples, err = b.HardPack(ctx, cfg.Seed, cfg.hard)
	case "toml-aug":
		samples, err = b.AugmentedPack(ctx, cfg.Seed, cfg.aug)
	default:
		return fmt.Errorf("unknown pack %q", cfg.Pack)
	}
	if err != nil {
		return err
	}

	if err := structgen.WriteJSONL(cfg.Out, samples); err != nil {
		return err
	}
	fmt.Printf("Wrote %d samples -> %s\n", len(samples), cfg.Out)

	rep, err := structgen.Smoke(cfg.Out, structgen.DefaultValidators())
	if err != nil {
		return err
	}
	fmt.Printf("[SMOKE] checked=%d ok=%d ng=%d pass_rate=%.3f\n",
		rep.Checked, rep.OK, rep.Failed, rep.PassRate())
	if rep.Failed > 0 {
		logger.Warn("some answers failed strict parsing; consider reducing counts or adjusting generators",
			"failed", rep.Failed)
	}
	return nil
}
