package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/crimson-sun/sift/internal/config"
	"github.com/crimson-sun/sift/internal/engine"
	"github.com/crimson-sun/sift/internal/engine/inventory"
	"github.com/crimson-sun/sift/internal/engine/rules"
	"github.com/crimson-sun/sift/internal/input"
	"github.com/crimson-sun/sift/internal/logging"
	"github.com/crimson-sun/sift/internal/output/file"
	"github.com/crimson-sun/sift/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	inputPath := flag.String("input", cfg.Input.Path, "input JSONL file")
	validPath := flag.String("out", cfg.Output.ValidPath, "unified events output file")
	invalidPath := flag.String("invalid-out", cfg.Output.InvalidPath, "rejected events output file")
	strategy := flag.String("strategy", cfg.Engine.Strategy, "field lookup strategy: stateless or inventory")
	logLevel := flag.String("log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	flag.Parse()

	cfg.Input.Path = *inputPath
	cfg.Output.ValidPath = *validPath
	cfg.Output.InvalidPath = *invalidPath
	cfg.Engine.Strategy = *strategy
	cfg.Log.Level = *logLevel

	logging.Init(logging.ParseLevel(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	lines, err := input.ReadFile(cfg.Input.Path)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	// Discover the field universe up front. In inventory mode this doubles
	// as the categorization pre-pass; otherwise it is report-only.
	set := rules.DefaultSet()
	inv := inventory.Build(lines, set)
	slog.Info("discovered fields",
		"count", len(inv.Names()), "fields", inv.SortedNames())

	var fields engine.FieldSource
	if cfg.Engine.Strategy == config.StrategyInventory {
		fields = inv
	}
	eng := engine.New(set, fields)

	w := file.New(cfg.Output.ValidPath, cfg.Output.InvalidPath)
	p := pipeline.New(eng, w)

	res, err := p.Run(lines)
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}

	slog.Info("saved events", "count", len(res.Valid), "path", w.ValidPath())
	if len(res.Invalid) > 0 {
		slog.Info("saved invalid events", "count", len(res.Invalid), "path", w.InvalidPath())
	}
}
