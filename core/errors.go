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

package core

import errors "gopkg.in/src-d/go-errors.v1"

// Error kinds reported by the resolver, executor and cache. Each is a
// go-errors.v1 Kind so callers can match on it with errors.Is/errors.As
// the same way auth.ErrNotAuthorized is matched in the teacher lineage.
var (
	// ErrUnknownField is returned when a DTO references a field absent
	// from the schema catalog.
	ErrUnknownField = errors.NewKind("unknown field: %s")
	// ErrTypeMismatch is returned when a DTO value cannot be coerced to
	// the catalog's declared type for a field.
	ErrTypeMismatch = errors.NewKind("type mismatch for field %s: expected %s")
	// ErrUnresolvedMeasure is returned when a DTO references a measure
	// alias that was never compiled.
	ErrUnresolvedMeasure = errors.NewKind("unresolved measure: %s")
	// ErrDuplicateAlias is returned when two measures in the same query
	// share an alias (§3 invariant).
	ErrDuplicateAlias = errors.NewKind("duplicate measure alias: %s")
	// ErrIllegalArgument covers query-shape validation failures, e.g. a
	// pivot query with non-empty rollupColumns (§6.3).
	ErrIllegalArgument = errors.NewKind("illegal argument: %s")
	// ErrCancelled is returned when a query's Context is cancelled before
	// a node or backend call completes.
	ErrCancelled = errors.NewKind("query cancelled")
	// ErrTimeout is returned when a query's deadline is exceeded.
	ErrTimeout = errors.NewKind("query timed out")
	// ErrCacheInconsistent is returned internally when a cached column's
	// length does not match its result skeleton; callers never observe
	// it directly, it just forces a miss (§7).
	ErrCacheInconsistent = errors.NewKind("cache entry for %v is inconsistent with result skeleton")
	// ErrBackendTransient marks a backend failure the data loader retries
	// with exponential backoff (§6.2, §7). The read path never retries
	// this itself; it surfaces it after any engine-internal retry budget
	// is exhausted.
	ErrBackendTransient = errors.NewKind("backend transient error: %s")
	// ErrBackendPermanent marks a backend failure surfaced unchanged, with
	// no cache writes (§7).
	ErrBackendPermanent = errors.NewKind("backend error: %s")
)
