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

// Package measure implements the measure expression tree: a tagged union
// of variants (primitive aggregate, computed, comparison, vector, constant,
// expression) each carrying a Kind for dispatch instead of an inheritance
// hierarchy, per the design note "visitor polymorphism -> tagged variants"
// (spec §9). A Measure knows its own Prerequisites (§4.2) and how to
// Evaluate itself once those prerequisites are materialized (§4.6); there
// is no separate visitor type walking the tree from outside.
package measure

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/core"
)

// Kind tags a Measure's variant.
type Kind int

const (
	// Primitive measures are computed directly by the backend in one
	// aggregation (sum/avg/min/max/count/grouping).
	Primitive Kind = iota
	// Computed measures are a binary arithmetic function of two other
	// measures at the same scope.
	Computed
	// Comparison measures relate a measure at the current scope to the
	// same measure at a shifted scope (e.g. "previous period").
	Comparison
	// Vector measures carry a list of values rather than a scalar.
	Vector
	// Constant measures carry a fixed value with no prerequisites.
	Constant
	// Expression measures apply an arbitrary named function to operand
	// measures, for cases Computed's binary-op shape doesn't cover.
	Expression
)

// Agg identifies a primitive aggregation function.
type Agg int

const (
	Sum Agg = iota
	Avg
	Min
	Max
	Count
	// Grouping is the synthetic aggregate backing GROUPING SETS/ROLLUP
	// indicator columns; it is never cacheable (§4.7).
	Grouping
)

func (a Agg) String() string {
	switch a {
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	case Min:
		return "min"
	case Max:
		return "max"
	case Count:
		return "count"
	case Grouping:
		return "grouping"
	default:
		return fmt.Sprintf("agg(%d)", int(a))
	}
}

// Op identifies a Computed measure's binary arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	// Div is ratio division: integer/integer promotes to floating,
	// division by zero yields null (§4.6).
	Div
)

// ScopeRef symbolically names which scope a Prerequisite or an Evaluate
// column lookup refers to, relative to the measure's own home scope. It
// lets this package stay independent of core/plan's concrete QueryScope
// (which in turn depends on this package for QueryPlanNodeKey), while
// still letting the analyzer and evaluator resolve it to a real scope.
type ScopeRef int

const (
	// Current is the measure's own home scope.
	Current ScopeRef = iota
	// Shifted is the scope produced by applying this measure's Shift to
	// the home scope (comparison measures only).
	Shifted
)

// Shift describes how a Comparison measure's reference position maps the
// current scope to a shifted one, e.g. "previous period" on a "period"
// dimension with Offset -1.
type Shift struct {
	Field  string
	Offset int
}

// Prerequisite is one requirement a measure declares via Prerequisites():
// "I need Measure materialized within the scope named by ScopeRef (plus
// Shift, if ScopeRef is Shifted)".
type Prerequisite struct {
	ScopeRef ScopeRef
	Shift    *Shift
	Measure  Measure
}

// EvalContext is the narrow surface Evaluate needs from the executor: the
// materialized column for one of this measure's prerequisite scopes, and
// that scope's row count. The exec package implements this against its
// tableByScope map; this package never sees core/plan.QueryScope.
type EvalContext interface {
	Column(ref ScopeRef, alias string) (*core.Column, error)
	RowCount(ref ScopeRef) int
	// Table returns the full materialized table for the given scope
	// reference, for measures (e.g. Comparison) whose RefFunc needs to
	// inspect more than a single column to locate a reference row.
	Table(ref ScopeRef) (*core.Table, error)
}

// Measure is the sealed interface every variant implements.
type Measure interface {
	// Alias is the stable, query-unique name this measure's output column
	// is written under (§3 invariant).
	Alias() string
	// Kind reports the variant for type-switch dispatch elsewhere (e.g.
	// cacheability checks) without a second interface hierarchy.
	Kind() Kind
	// Prerequisites lists the immediate (scope, measure) pairs this
	// measure needs materialized before it can Evaluate (§4.2). Primitive
	// measures need only themselves at the current scope; Constant and
	// Expression-with-no-operands need nothing.
	Prerequisites() []Prerequisite
	// Evaluate computes this measure's column from already-materialized
	// prerequisite columns. Primitive measures never have Evaluate called
	// on them; the backend computes them directly (§4.6 "non-primitive
	// node").
	Evaluate(ctx EvalContext) (*core.Column, error)
}

// Cacheable reports whether a measure is eligible for the shared cache:
// primitive AND its alias is not a grouping alias (§4.7). Grouping
// measures are primitive but their alias encodes a field name and would
// collide across scopes if cached, so they are excluded explicitly.
func Cacheable(m Measure) bool {
	p, ok := m.(*PrimitiveMeasure)
	if !ok {
		return false
	}
	if p.Function == Grouping {
		return false
	}
	return !IsGroupingAlias(p.Alias())
}

const groupingAliasPrefix = "__grouping__:"

// GroupingAlias builds the fixed alias schema for a grouping indicator
// measure over the given field: "__grouping__:<field>". Documented here
// per spec §9's open question about the heuristic alias-pattern check --
// this implementation makes it an exact prefix match instead of a guess.
func GroupingAlias(field string) string {
	return groupingAliasPrefix + field
}

// IsGroupingAlias reports whether alias was produced by GroupingAlias.
func IsGroupingAlias(alias string) bool {
	return strings.HasPrefix(alias, groupingAliasPrefix)
}

// FieldFromGroupingAlias extracts the field name embedded in a grouping
// alias, or "" if alias is not a grouping alias.
func FieldFromGroupingAlias(alias string) string {
	if !IsGroupingAlias(alias) {
		return ""
	}
	return strings.TrimPrefix(alias, groupingAliasPrefix)
}

// ErrUnknownOp is returned by Evaluate when a Computed measure carries an
// Op value outside the known set.
var ErrUnknownOp = errors.New("measure: unknown computed operator")
