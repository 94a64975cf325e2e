package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	structgen "github.com/vivaneiona/structgen"
)

func main() {
	counts := structgen.DefaultFocusCounts()
	var (
		out     = flag.String("out", "outputs/sft_toml_focus.jsonl", "output JSONL path")
		seed    = flag.Int64("seed", 42, "sampling seed")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.IntVar(&counts.JSONToTOML, "json-to-toml", counts.JSONToTOML, "json_to_toml samples to keep")
	flag.IntVar(&counts.YAMLToTOML, "yaml-to-toml", counts.YAMLToTOML, "yaml_to_toml samples to keep")
	flag.IntVar(&counts.TextToTOML, "text-to-toml", counts.TextToTOML, "text_to_toml samples to keep")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tomlfocus [flags] input.jsonl [input.jsonl ...]")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	samples, err := structgen.BuildFocusPack(inputs, counts, *seed, logger)
	if err != nil {
		logger.Error("focus pack failed", "error", err)
		os.Exit(1)
	}
	if err := structgen.WriteJSONL(*out, samples); err != nil {
		logger.Error("write failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d TOML-focused samples -> %s\n", len(samples), *out)
	perSub := map[string]int{}
	for _, s := range samples {
		perSub[s.Subcategory]++
	}
	for _, sub := range []string{"json_to_toml", "yaml_to_toml", "text_to_toml"} {
		fmt.Printf("  %s: %d\n", sub, perSub[sub])
	}
}
