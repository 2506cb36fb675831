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

package blockstore

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"

	"github.com/gluwa/validator-scheduler/core/blockscheduler"
	"github.com/gluwa/validator-scheduler/core/blockstore/schedulerdb"
)

// CachingStatusStore is a two-level Status Store. The hot level is a bounded
// fastcache.Cache; eviction from it is what makes "a known predecessor whose
// status was dropped from memory" a real, reproducible condition rather than
// a simulated one. The cold level is an optional leveldb-backed durable
// store consulted only through GetFromBlockstore, the scheduler's
// BlockstoreFallback collaborator, not through Status itself.
type CachingStatusStore struct {
	hot  *fastcache.Cache
	cold ethdb.Database
}

// OpenCachingStatusStore creates a store with both a bounded hot cache and a
// durable leveldb-backed cold store rooted at path.
func OpenCachingStatusStore(path string, hotCacheBytes int) (*CachingStatusStore, error) {
	ldb, err := leveldb.New(path, 256, 256, "blockschedulerdb", false)
	if err != nil {
		return nil, err
	}
	return &CachingStatusStore{
		hot:  fastcache.New(hotCacheBytes),
		cold: rawdb.NewDatabase(ldb),
	}, nil
}

// NewMemoryCachingStatusStore creates a store with only the bounded hot
// cache and no durable cold layer; GetFromBlockstore always misses. Used by
// tests; the daemon always opens the durable store.
func NewMemoryCachingStatusStore(hotCacheBytes int) *CachingStatusStore {
	return &CachingStatusStore{hot: fastcache.New(hotCacheBytes)}
}

// Status implements blockscheduler.StatusStore. It consults only the hot
// cache: a miss here is reported as Unknown even if the cold store still
// holds a durable verdict, so the scheduler's cache-miss recovery path runs
// exactly when the hot cache has actually evicted an entry.
func (c *CachingStatusStore) Status(id common.Hash) blockscheduler.ValidityStatus {
	v, ok := c.hot.HasGet(nil, id.Bytes())
	if !ok || len(v) == 0 {
		return blockscheduler.Unknown
	}
	return blockscheduler.ValidityStatus(v[0])
}

// SetStatus records id's verdict in both the hot cache and, if configured,
// the durable cold store. Validator workers call this once they finish
// validating a block, before calling Done on the scheduler.
func (c *CachingStatusStore) SetStatus(id common.Hash, status blockscheduler.ValidityStatus) {
	c.hot.Set(id.Bytes(), []byte{byte(status)})
	if c.cold != nil {
		schedulerdb.WriteStatus(c.cold, id, uint8(status))
	}
}

// Evict drops id from the hot cache only, simulating the memory pressure
// that produces a genuine cache miss without touching durable state.
func (c *CachingStatusStore) Evict(id common.Hash) {
	c.hot.Del(id.Bytes())
}

// GetFromBlockstore implements blockscheduler.BlockstoreFallback: a block
// durably recorded Valid is reported as committed; anything else (no cold
// store configured, no record, or a non-Valid record) is reported absent so
// the scheduler's own cache-miss recovery continues to handle it.
func (c *CachingStatusStore) GetFromBlockstore(id common.Hash) (*blockscheduler.Block, error) {
	if c.cold == nil {
		return nil, nil
	}
	status, ok := schedulerdb.ReadStatus(c.cold, id)
	if !ok || blockscheduler.ValidityStatus(status) != blockscheduler.Valid {
		return nil, nil
	}
	return &blockscheduler.Block{BlockID: id}, nil
}

// Close releases the durable cold store, if one was opened.
func (c *CachingStatusStore) Close() error {
	if c.cold != nil {
		return c.cold.Close()
	}
	return nil
}
