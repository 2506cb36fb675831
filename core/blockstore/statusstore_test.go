// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package blockstore_test

import (
	"testing"

	"github.com/gluwa/validator-scheduler/core/blockscheduler"
	"github.com/gluwa/validator-scheduler/core/blockstore"
)

func TestMemoryCachingStatusStoreMissReadsUnknown(t *testing.T) {
	store := blockstore.NewMemoryCachingStatusStore(1 << 16)
	if got := store.Status(hash("A")); got != blockscheduler.Unknown {
		t.Fatalf("Status of unset block = %v, want Unknown", got)
	}
}

func TestMemoryCachingStatusStoreSetAndEvict(t *testing.T) {
	store := blockstore.NewMemoryCachingStatusStore(1 << 16)
	a := hash("A")

	store.SetStatus(a, blockscheduler.Valid)
	if got := store.Status(a); got != blockscheduler.Valid {
		t.Fatalf("Status after SetStatus = %v, want Valid", got)
	}

	store.Evict(a)
	if got := store.Status(a); got != blockscheduler.Unknown {
		t.Fatalf("Status after Evict = %v, want Unknown", got)
	}
}

func TestMemoryCachingStatusStoreNoBlockstoreFallback(t *testing.T) {
	store := blockstore.NewMemoryCachingStatusStore(1 << 16)
	blk, err := store.GetFromBlockstore(hash("A"))
	if err != nil {
		t.Fatalf("GetFromBlockstore: %v", err)
	}
	if blk != nil {
		t.Fatalf("GetFromBlockstore without a cold store should always miss, got %v", blk)
	}
}

func TestOpenCachingStatusStorePersistsAcrossEviction(t *testing.T) {
	store, err := blockstore.OpenCachingStatusStore(t.TempDir(), 1<<16)
	if err != nil {
		t.Fatalf("OpenCachingStatusStore: %v", err)
	}
	defer store.Close()

	a := hash("A")
	store.SetStatus(a, blockscheduler.Valid)
	store.Evict(a)

	if got := store.Status(a); got != blockscheduler.Unknown {
		t.Fatalf("hot Status after Evict = %v, want Unknown", got)
	}

	blk, err := store.GetFromBlockstore(a)
	if err != nil {
		t.Fatalf("GetFromBlockstore: %v", err)
	}
	if blk == nil || blk.BlockID != a {
		t.Fatalf("GetFromBlockstore after eviction = %v, want committed record for %v", blk, a)
	}
}

func TestOpenCachingStatusStoreInvalidNeverUpgradesToValid(t *testing.T) {
	store, err := blockstore.OpenCachingStatusStore(t.TempDir(), 1<<16)
	if err != nil {
		t.Fatalf("OpenCachingStatusStore: %v", err)
	}
	defer store.Close()

	a := hash("A")
	store.SetStatus(a, blockscheduler.Invalid)
	store.Evict(a)

	blk, err := store.GetFromBlockstore(a)
	if err != nil {
		t.Fatalf("GetFromBlockstore: %v", err)
	}
	if blk != nil {
		t.Fatalf("GetFromBlockstore should not upgrade a durably Invalid verdict, got %v", blk)
	}
}
