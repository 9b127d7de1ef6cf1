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

// Package postprocess shapes the root scope's fully evaluated table into
// the user-facing result (§4.8): dropping backend-only columns and
// reordering, substituting ROLLUP/GROUPING-SETS nulls with a total
// marker, ordering rows, truncating to the query limit, and (for pivot
// queries) reshaping into a PivotTable. The dynamic GROUP column-set
// reshape (§4.8 item 1) lives here too, as Reshape, but runs
// earlier in the pipeline than the rest of this package -- before
// evaluation, over every scope's table, not just the root's.
package postprocess

import (
	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
)

// DefaultTotalMarker is the sentinel substituted for a null grouping cell
// produced by ROLLUP/GROUPING SETS (§4.8.3, §8 property 5). A single
// string value regardless of the column's Type matches the Java original
// this core is ported from, which renders every total cell as "Total"
// (_examples/original_source, name/domain anchor per DESIGN.md).
const DefaultTotalMarker = "Total"

// TotalMarkerFunc returns the sentinel value substituted for a null
// grouping cell of the given type. Config lets callers override this per
// field type if a caller's UI needs e.g. a distinct marker per locale.
type TotalMarkerFunc func(core.Type) interface{}

// LimitNotifier is invoked exactly once, with the query's limit, when a
// result was truncated to exactly that many rows -- signalling possibly-
// truncated output to the caller (§4.8 step 5, §8 property 7).
type LimitNotifier func(limit int)

// Config carries the knobs Apply needs beyond what a CompiledQuery already
// describes.
type Config struct {
	// TotalMarker defaults to DefaultTotalMarker for every type.
	TotalMarker TotalMarkerFunc
	// Notifier is called when truncation occurs; may be nil.
	Notifier LimitNotifier
}

func (c Config) totalMarker() TotalMarkerFunc {
	if c.TotalMarker != nil {
		return c.TotalMarker
	}
	return func(core.Type) interface{} { return DefaultTotalMarker }
}

// Result is Apply's output: exactly one of Table or Pivot is set,
// depending on whether q requested a pivot reshape (§3, §4.8).
type Result struct {
	Table *core.ColumnarTable
	Pivot *core.PivotTable
}

// Apply runs the full post-processing sequence of §4.8 over root, the
// root scope's fully evaluated table, per q: select/reorder declared
// columns, substitute total markers, order rows, truncate to q.Limit,
// drop a single-group synthetic GROUP column, and (if q.Pivot is set)
// reshape into a PivotTable.
func Apply(root *core.Table, q *analyzer.CompiledQuery, cfg Config) (*Result, error) {
	measureAliases := requestedAliases(q)
	ctbl := SelectAndOrderColumns(root, q.Columns, measureAliases)

	rollup := rollupFields(q)
	marker := cfg.totalMarker()
	ReplaceTotalCellValues(ctbl, rollup, marker)

	OrderRows(ctbl, q.OrderBy, marker)

	TruncateAndNotify(ctbl.Table, q.Limit, cfg.Notifier)

	if q.GroupColumns != nil && len(q.GroupColumns.Buckets) == 1 {
		ctbl.RemoveColumn(q.GroupColumns.Field)
		ctbl.GroupingFields = removeName(ctbl.GroupingFields, q.GroupColumns.Field)
	}

	if q.Pivot == nil {
		return &Result{Table: ctbl}, nil
	}
	// The super-aggregate bitmap is built from the final row order: rows
	// were reordered and truncated above, so a bitmap computed any
	// earlier would index the wrong rows by the time the pivot builder
	// reads it.
	totals := SuperAggregateRows(ctbl.Table, rollup, marker)
	pivot, err := BuildPivotTable(ctbl, q.Pivot, totals)
	if err != nil {
		return nil, err
	}
	return &Result{Pivot: pivot}, nil
}

// requestedAliases returns the user-requested measure aliases in
// declaration order (§8 property 6), reading it off
// CompiledQuery.RequestedKeys rather than the Measures map, which loses
// order.
func requestedAliases(q *analyzer.CompiledQuery) []string {
	aliases := make([]string, 0, len(q.RequestedKeys))
	seen := make(map[string]bool, len(q.RequestedKeys))
	for _, k := range q.RequestedKeys {
		a := k.Measure.Alias()
		if seen[a] {
			continue
		}
		seen[a] = true
		aliases = append(aliases, a)
	}
	return aliases
}

// rollupFields returns every field a ROLLUP or GROUPING SETS clause in
// q's root scope can null out, the set ReplaceTotalCellValues and
// SuperAggregateRows consult (§4.8.3).
func rollupFields(q *analyzer.CompiledQuery) []string {
	seen := make(map[string]bool)
	var fields []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	for _, f := range q.RootScope.RollupColumns {
		add(f)
	}
	for _, set := range q.RootScope.GroupingSets {
		for _, f := range set {
			add(f)
		}
	}
	return fields
}

func removeName(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
