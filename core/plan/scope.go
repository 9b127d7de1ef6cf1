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

// Package plan holds the grouping-context and dependency-graph data model:
// QueryScope, QueryPlanNodeKey, DependencyGraph, and ExecutionPlan's
// topological walk (§3, §4.3, §4.4).
package plan

import (
	"github.com/mitchellh/hashstructure"

	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
)

// Join is one join clause of a QueryScope.
type Join struct {
	TableRef string
	On       core.And
}

// QueryScope is the grouping context a measure is evaluated in: which
// table, which joins, which grouping columns, which rollup/grouping-set
// structure, which filters, and how many rows to ask the backend for
// (§3). Two scopes are equal iff all fields are structurally equal; Hash
// gives that structural-equality test a stable, comparable-map-key form
// via mitchellh/hashstructure (the teacher's own direct dependency).
type QueryScope struct {
	TableRef      string
	Joins         []Join
	Columns       []string
	RollupColumns []string
	GroupingSets  [][]string
	Filters       core.And
	Limit         int
	VirtualTables []string

	// Shift is set when this scope is the "shifted" sub-scope of a
	// Comparison measure (§4.2): a scope otherwise identical to its base
	// but which fetches every value of Shift.Field unfiltered, so the
	// evaluator can locate a prior-period row itself (§4.6). nil for an
	// ordinary (current) scope. Its presence (and value) is part of the
	// scope's structural identity, so a "previous period" sub-scope and
	// a "two periods ago" sub-scope never collapse into the same node.
	Shift *measure.Shift
}

// Hash returns a structural hash of the scope, stable across process runs
// for identical field values.
func (s QueryScope) Hash() uint64 {
	h, err := hashstructure.Hash(s, nil)
	if err != nil {
		// hashstructure only fails on unsupported types (channels, funcs);
		// QueryScope never carries any, so this is unreachable in
		// practice. Panicking here would surface a programming error
		// immediately rather than silently colliding cache keys.
		panic(err)
	}
	return h
}

// Equal reports structural equality (§3 invariant).
func (s QueryScope) Equal(o QueryScope) bool {
	return s.Hash() == o.Hash()
}

// CopyWithNewLimit returns a scope identical to s except for Limit (§3).
func (s QueryScope) CopyWithNewLimit(limit int) QueryScope {
	c := s
	c.Limit = limit
	return c
}
