// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// blockschedulerd is a small daemon that plays the role of the chain
// controller well enough to exercise the block-validation scheduler
// end-to-end, with synthetic workers standing in for real execution.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	app = &cli.App{
		Name:  "blockschedulerd",
		Usage: "block-validation scheduler daemon",
	}

	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "data directory for the durable status store",
		Value: "./blockschedulerd-data",
	}
	statusHotCacheBytesFlag = &cli.Uint64Flag{
		Name:  "status-hot-cache-bytes",
		Usage: "size in bytes of the in-memory status-store cache (smaller values surface cache misses sooner)",
		Value: 32 << 20,
	}
	resultsBufferSizeFlag = &cli.IntFlag{
		Name:  "results-buffer-size",
		Usage: "buffer capacity of the exposed results channel",
		Value: 256,
	}
	workerCountFlag = &cli.IntFlag{
		Name:  "worker-count",
		Usage: "number of synthetic validator workers",
		Value: 4,
	}
	workerValidationDelayFlag = &cli.DurationFlag{
		Name:  "worker-validation-delay",
		Usage: "simulated per-block validation delay",
		Value: 50 * time.Millisecond,
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "emit logs as JSON instead of the terminal format",
		Value: false,
	}
)

func init() {
	app.Action = runDaemon
	app.Flags = []cli.Flag{
		dataDirFlag,
		statusHotCacheBytesFlag,
		resultsBufferSizeFlag,
		workerCountFlag,
		workerValidationDelayFlag,
		logJSONFlag,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(ctx *cli.Context) error {
	if ctx.Bool(logJSONFlag.Name) {
		log.SetDefault(log.NewLogger(log.JSONHandler(os.Stderr)))
	} else {
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))
	}

	cfg := buildConfigFromCLI(ctx)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runner, err := NewRunner(cfg)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := runner.Start(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	log.Info("blockschedulerd started", "datadir", cfg.DataDir, "workers", cfg.WorkerCount)

	sig := <-sigCh
	log.Info("received signal, shutting down", "signal", sig)

	return runner.Stop()
}

func buildConfigFromCLI(ctx *cli.Context) *Config {
	return &Config{
		DataDir:               ctx.String(dataDirFlag.Name),
		StatusHotCacheBytes:   ctx.Uint64(statusHotCacheBytesFlag.Name),
		ResultsBufferSize:     ctx.Int(resultsBufferSizeFlag.Name),
		WorkerCount:           ctx.Int(workerCountFlag.Name),
		WorkerValidationDelay: ctx.Duration(workerValidationDelayFlag.Name),
		LogJSON:               ctx.Bool(logJSONFlag.Name),
	}
}
