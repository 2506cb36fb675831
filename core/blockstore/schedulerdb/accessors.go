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

package schedulerdb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// StatusRecord is the RLP-encoded payload stored for each block id.
type StatusRecord struct {
	Status uint8
}

// WriteStatus persists id's verdict. Encoding failures indicate a corrupt
// StatusRecord definition, not a runtime condition callers can recover from,
// so they are fatal the way geth's own rawdb writers treat marshal errors.
func WriteStatus(db ethdb.KeyValueWriter, id common.Hash, status uint8) {
	enc, err := rlp.EncodeToBytes(StatusRecord{Status: status})
	if err != nil {
		log.Crit("schedulerdb: failed to encode status record", "block", id, "err", err)
	}
	if err := db.Put(statusKey(id), enc); err != nil {
		log.Crit("schedulerdb: failed to write status", "block", id, "err", err)
	}
}

// ReadStatus returns id's durable verdict, or ok=false if none is recorded
// or the record fails to decode.
func ReadStatus(db ethdb.KeyValueReader, id common.Hash) (status uint8, ok bool) {
	data, err := db.Get(statusKey(id))
	if err != nil || len(data) == 0 {
		return 0, false
	}
	var rec StatusRecord
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		log.Error("schedulerdb: failed to decode status record", "block", id, "err", err)
		return 0, false
	}
	return rec.Status, true
}

// HasStatus reports whether id has a durable verdict recorded.
func HasStatus(db ethdb.KeyValueReader, id common.Hash) bool {
	ok, err := db.Has(statusKey(id))
	if err != nil {
		return false
	}
	return ok
}

// DeleteStatus removes id's durable verdict, if any.
func DeleteStatus(db ethdb.KeyValueWriter, id common.Hash) {
	if err := db.Delete(statusKey(id)); err != nil {
		log.Error("schedulerdb: failed to delete status", "block", id, "err", err)
	}
}
