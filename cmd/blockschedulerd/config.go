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

package main

import (
	"fmt"
	"time"
)

// Config holds the blockschedulerd daemon configuration.
type Config struct {
	DataDir string

	// StatusHotCacheBytes sizes the in-memory fastcache layer of the status
	// store. This is the knob that determines how often a predecessor's
	// verdict actually ages out of memory and triggers cache-miss recovery.
	StatusHotCacheBytes uint64

	// ResultsBufferSize bounds the channel exposed by the results sink for
	// external consumers; the sink's own internal staging buffer is always
	// unbounded so Send from the scheduler never blocks.
	ResultsBufferSize int

	// WorkerCount is the number of synthetic validator workers: goroutines
	// that call Done on behalf of whatever blocks they pick up.
	WorkerCount int

	// WorkerValidationDelay simulates time spent executing and verifying a
	// block before Done is called.
	WorkerValidationDelay time.Duration

	LogJSON bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("datadir is required")
	}
	if c.StatusHotCacheBytes == 0 {
		return fmt.Errorf("status-hot-cache-bytes must be > 0")
	}
	if c.ResultsBufferSize < 0 {
		return fmt.Errorf("results-buffer-size must be >= 0")
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker-count must be > 0")
	}
	if c.WorkerValidationDelay < 0 {
		return fmt.Errorf("worker-validation-delay must be >= 0")
	}
	return nil
}
