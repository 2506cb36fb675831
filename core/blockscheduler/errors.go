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

import "errors"

// ErrUnknownBlock is returned by a ForkView when asked to walk the ancestry
// of a block it has never recorded.
var ErrUnknownBlock = errors.New("blockscheduler: unknown block")

// ErrResultsSinkClosed is returned by a ResultsSink's Send once it has been
// closed. The scheduler treats receiving it as fatal: see emitInvalid.
var ErrResultsSinkClosed = errors.New("blockscheduler: results sink closed")

// errResultsSinkRequired is logged (via log.Crit) when a result must be
// reported but no sink was ever configured via SetResultsSink.
var errResultsSinkRequired = errors.New("blockscheduler: no results sink configured")
