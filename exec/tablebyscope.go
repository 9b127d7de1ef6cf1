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

// Package exec orchestrates the prefetch stage (§4.5) and the evaluator
// (§4.6) over a plan.ExecutionPlan's two passes, modeled on the teacher's
// engine-invokes-analyzer-then-executor flow.
package exec

import (
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
)

// TableByScope is the per-query map from a scope's structural hash to its
// materialized table (§2 data flow "tableByScope[root]"). Keyed by hash
// rather than by plan.QueryScope directly since QueryScope holds slices
// and isn't itself a valid Go map key.
type TableByScope map[uint64]*core.Table

// Get looks up the table for scope.
func (t TableByScope) Get(scope plan.QueryScope) (*core.Table, bool) {
	tbl, ok := t[scope.Hash()]
	return tbl, ok
}

// Set stores the table for scope.
func (t TableByScope) Set(scope plan.QueryScope, tbl *core.Table) {
	t[scope.Hash()] = tbl
}
