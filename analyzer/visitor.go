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

package analyzer

import (
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
	"github.com/squashql/squashql-go/core/plan"
)

// PrefetchVisitor dispatches over a compiled measure's variant and returns
// the (scope, measure) pairs it immediately requires (§4.2). It never
// executes anything; it only declares requirements by resolving each
// measure.Prerequisite's symbolic ScopeRef against the concrete scope the
// measure is being evaluated in.
//
// The dispatch itself lives on Measure.Prerequisites (a tagged-variant
// method, per the design note in core/measure); this function's job is
// purely the ScopeRef -> plan.QueryScope resolution that core/measure
// cannot do itself without importing core/plan.
type PrefetchVisitor struct{}

// Visit returns m's immediate prerequisites at scope, as concrete node
// keys.
func (PrefetchVisitor) Visit(scope plan.QueryScope, m measure.Measure) []plan.QueryPlanNodeKey {
	prereqs := m.Prerequisites()
	keys := make([]plan.QueryPlanNodeKey, 0, len(prereqs))
	for _, p := range prereqs {
		var s plan.QueryScope
		switch p.ScopeRef {
		case measure.Shifted:
			s = ShiftedPrerequisiteScope(scope, p.Shift)
		default:
			s = scope
		}
		keys = append(keys, plan.QueryPlanNodeKey{Scope: s, Measure: p.Measure})
	}
	return keys
}

// ShiftScope builds the sub-scope a Comparison measure's shifted
// prerequisite is evaluated in: identical to base except Shift is set and
// any filter on shift.Field is dropped, so the backend returns every value
// of that dimension for the evaluator's reference-position lookup (§4.2,
// §4.6). Exported so exec's Evaluator can re-derive the same shifted
// scope when looking up tableByScope without duplicating the rule.
func ShiftScope(base plan.QueryScope, shift *measure.Shift) plan.QueryScope {
	s := base
	s.Shift = shift
	s.Filters = dropFilterOnField(base.Filters, shift.Field)
	return s
}

// ShiftedPrerequisiteScope builds the exact scope a Comparison measure's
// Shifted prerequisite is materialized and looked up under: ShiftScope plus
// one extra row of limit so the caller can detect truncation that would
// otherwise silently invalidate a dependent computation (§4.4). Both the
// graph builder (declaring the prerequisite) and exec's Evaluator (resolving
// measure.Shifted at evaluation time) call this one function, so the scope a
// table is stored under and the scope it is looked up under can never
// disagree.
func ShiftedPrerequisiteScope(base plan.QueryScope, shift *measure.Shift) plan.QueryScope {
	return ShiftScope(base, shift).CopyWithNewLimit(base.Limit + 1)
}

// dropFilterOnField returns filters with every predicate on field removed,
// leaving every other predicate untouched.
func dropFilterOnField(filters core.And, field string) core.And {
	if len(filters) == 0 {
		return filters
	}
	out := make(core.And, 0, len(filters))
	for _, p := range filters {
		if p.Field == field {
			continue
		}
		out = append(out, p)
	}
	return out
}
