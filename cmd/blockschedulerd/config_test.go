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
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		DataDir:               "/tmp/blockschedulerd-test",
		StatusHotCacheBytes:   32 << 20,
		ResultsBufferSize:     256,
		WorkerCount:           4,
		WorkerValidationDelay: 50 * time.Millisecond,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero validation delay", func(c *Config) { c.WorkerValidationDelay = 0 }, false},
		{"missing datadir", func(c *Config) { c.DataDir = "" }, true},
		{"zero hot cache", func(c *Config) { c.StatusHotCacheBytes = 0 }, true},
		{"negative results buffer", func(c *Config) { c.ResultsBufferSize = -1 }, true},
		{"zero workers", func(c *Config) { c.WorkerCount = 0 }, true},
		{"negative validation delay", func(c *Config) { c.WorkerValidationDelay = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
