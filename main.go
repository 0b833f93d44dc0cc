package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/banachtech/swaptions/api"
	"github.com/banachtech/swaptions/config"
	"github.com/banachtech/swaptions/data"
	"github.com/banachtech/swaptions/logging"
	"github.com/banachtech/swaptions/mainfuncs"
)

const service = "swaptions"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, err := config.ParseArgs(argv, os.Stderr)
	if err != nil {
		if !errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg.Apply(args)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.New(cfg.Log, service)

	if args.Serve != "" {
		if err := api.NewServer(*cfg, logger).Start(cfg.Server.Addr); err != nil {
			logger.Error("cannot start server", "error", err)
			return 1
		}
		return 0
	}

	swaptions := data.Swaptions(cfg.Swaptions)
	pricer := mainfuncs.NewPricer(cfg.Engine, logger)

	var done func(id int)
	if args.Progress {
		bar := mainfuncs.NewProgress(os.Stdout, len(swaptions))
		done = func(int) { _ = bar.Add(1) }
	}

	logger.Info("pricing started",
		"swaptions", len(swaptions),
		"trials", cfg.Engine.Trials,
		"workers", cfg.Workers,
		"block_size", cfg.Engine.BlockSize,
	)
	start := time.Now()
	if err := mainfuncs.Dispatch(swaptions, cfg.Workers, pricer.Price, done); err != nil {
		logger.Warn("some swaptions could not be priced", "error", err)
	}

	failed, err := mainfuncs.WriteResults(os.Stderr, swaptions)
	if err != nil {
		logger.Error("cannot write results", "error", err)
		return 1
	}

	sum := mainfuncs.Summarize(swaptions)
	logger.Info("pricing finished",
		"elapsed", time.Since(start),
		"priced", sum.Priced,
		"failed", sum.Failed,
		"mean_price", sum.Mean,
		"min_price", sum.Min,
		"max_price", sum.Max,
	)
	if failed > 0 {
		return 2
	}
	return 0
}
