// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache implements the shared, thread-safe (scope, principal) ->
// per-measure column store (§3 CacheKey, §4.7), with Empty/LRU/Global
// policy variants and partial-hit semantics driven from exec's prefetch
// stage.
package cache

import (
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
)

// Key is a CacheKey (§3): a scope's structural hash plus the principal
// partitioning the cache. Hash, not the scope value itself, keeps Key
// comparable and cheap to use as a map key across every policy variant.
type Key struct {
	ScopeHash uint64
	Principal string
}

// KeyFor builds the Key for scope and principal.
func KeyFor(scope plan.QueryScope, principal string) Key {
	return Key{ScopeHash: scope.Hash(), Principal: principal}
}

// Stats reports a principal's lifetime hit/miss/eviction counts (§4.7).
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Cache is the contract of §4.7. Implementations MUST be safe for
// concurrent use by multiple queries.
type Cache interface {
	// Contains reports whether a cached column exists for alias at key.
	Contains(key Key, alias string) bool
	// CreateRawResult returns a result skeleton holding only the stable
	// grouping columns, sized and ordered identically to what the backend
	// would return for this scope.
	CreateRawResult(key Key, groupingColumns []*core.Column) *core.Table
	// ContributeToResult copies the cached columns named by aliases into
	// table, preserving row alignment. An alias with no cached column (or
	// a length mismatch, §7 "Cache inconsistency") is silently skipped and
	// the caller must treat it as a miss.
	ContributeToResult(table *core.Table, key Key, aliases []string)
	// ContributeToCache stores table's columns named by aliases under key.
	// Callers MUST only pass cacheable-miss aliases (§4.7's cacheability
	// filter lives in core/measure.Cacheable, not here).
	ContributeToCache(table *core.Table, key Key, aliases []string)
	// Stats returns principal's lifetime counters.
	Stats(principal string) Stats
	// Clear evicts every entry for principal (INVALIDATE, §6.3).
	Clear(principal string)
}
