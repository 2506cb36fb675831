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

package blockscheduler

// ValidityStatus is the cached validation verdict for a block, as reported by
// the Status Store collaborator.
type ValidityStatus uint8

const (
	// Unknown means the store has no cached verdict for the block. This is
	// also what a cache miss looks like: a block the scheduler has seen
	// before but whose verdict aged out of the store.
	Unknown ValidityStatus = iota
	// Valid means the block passed validation.
	Valid
	// Invalid means the block failed validation; its descendants must never
	// be executed.
	Invalid
	// Missing means the block manager does not have the block at all yet.
	// Transient: the chain controller is expected to retry.
	Missing
	// InValidation means another in-flight validation already covers this
	// block. Transient, same retry expectation as Missing.
	InValidation
)

func (s ValidityStatus) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Missing:
		return "missing"
	case InValidation:
		return "in_validation"
	default:
		return "invalid_status"
	}
}
