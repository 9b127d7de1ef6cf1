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

package postprocess

import (
	"sort"
	"time"

	"github.com/spf13/cast"

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
)

// OrderRows stable-sorts ctbl's rows by specs' dimension comparators,
// falling back to every other grouping column in declaration order when
// specs leave ties (§4.8 step 4). A column's total-marker cells (already
// substituted by ReplaceTotalCellValues) sort after ordinary values
// unless the column's OrderSpec sets TotalsLast to false (§8: "Total
// markers sort last by default, configurable per column").
func OrderRows(ctbl *core.ColumnarTable, specs []analyzer.OrderSpec, marker TotalMarkerFunc) {
	n := ctbl.Count()
	if n == 0 {
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	specByField := make(map[string]analyzer.OrderSpec, len(specs))
	for _, s := range specs {
		specByField[s.Field] = s
	}
	compareFields := compareOrder(ctbl, specs)

	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := idx[a], idx[b]
		for _, field := range compareFields {
			col := ctbl.Column(field)
			if col == nil || ra >= col.Len() || rb >= col.Len() {
				continue
			}
			spec, hasSpec := specByField[field]
			totalsLast := !hasSpec || spec.TotalsLast

			sentinel := marker(col.Field.Type)
			aTotal := col.Values[ra] == sentinel
			bTotal := col.Values[rb] == sentinel
			if aTotal != bTotal {
				if totalsLast {
					return bTotal // a (non-total) sorts before b (total)
				}
				return aTotal // a (total) sorts before b (non-total)
			}
			if aTotal && bTotal {
				continue // both totals on this field: tie, fall through
			}

			cmp := compareValues(col.Values[ra], col.Values[rb])
			if cmp == 0 {
				continue
			}
			if hasSpec && spec.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false // every comparator tied: preserve original (stable) order
	})

	permute(ctbl.Table, idx)
}

// compareOrder lists every grouping column to sort by: specs' fields
// first (in the order the caller declared them), then every remaining
// grouping column of ctbl as a lexicographic fallback.
func compareOrder(ctbl *core.ColumnarTable, specs []analyzer.OrderSpec) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, s := range specs {
		if !seen[s.Field] {
			seen[s.Field] = true
			fields = append(fields, s.Field)
		}
	}
	for _, name := range ctbl.GroupingFields {
		if !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}
	return fields
}

// compareValues orders two cell values of possibly-differing dynamic
// type: numerically if both coerce to a float, chronologically if both
// are time.Time, lexicographically on their string form otherwise. nil
// sorts before any non-nil value.
func compareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if af, aerr := cast.ToFloat64E(a); aerr == nil {
		if bf, berr := cast.ToFloat64E(b); berr == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := cast.ToString(a), cast.ToString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// permute reorders every column of tbl in place to idx's row order.
func permute(tbl *core.Table, idx []int) {
	for _, c := range tbl.Columns() {
		reordered := make([]interface{}, len(idx))
		for i, src := range idx {
			if src < c.Len() {
				reordered[i] = c.Values[src]
			}
		}
		c.Values = reordered
	}
}
