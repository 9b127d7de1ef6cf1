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

package memengine

import (
	"github.com/spf13/cast"

	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/core"
)

// groupingSets expands columns/rollupColumns/explicitSets into the list of
// column subsets the backend must produce one aggregation level for
// (GLOSSARY "Rollup / grouping set"). An explicit GROUPING SETS clause is
// used verbatim; a ROLLUP clause generates the standard prefix sequence
// (all rollup columns present, down to none); with neither, there is
// exactly one grouping set: columns itself.
func groupingSets(columns, rollupColumns []string, explicitSets [][]string) [][]string {
	if len(explicitSets) > 0 {
		return explicitSets
	}
	if len(rollupColumns) == 0 {
		return [][]string{columns}
	}
	isRollup := make(map[string]bool, len(rollupColumns))
	for _, f := range rollupColumns {
		isRollup[f] = true
	}
	var base []string
	for _, c := range columns {
		if !isRollup[c] {
			base = append(base, c)
		}
	}
	sets := make([][]string, 0, len(rollupColumns)+1)
	for k := len(rollupColumns); k >= 0; k-- {
		set := append([]string{}, base...)
		set = append(set, rollupColumns[:k]...)
		sets = append(sets, set)
	}
	return sets
}

// aggregatedRow is one output row: dims holds every one of allColumns'
// values for this row (nil for columns rolled up away at this grouping
// level), measures holds each requested measure's computed value.
type aggregatedRow struct {
	dims     map[string]interface{}
	measures map[string]interface{}
	sortKey  string
}

// aggregateGroup computes one output row per distinct combination of gs's
// column values among rowIdx, for every requested measure.
func aggregateGroup(data *core.Table, rowIdx []int, allColumns, gs []string, measures []backend.PrimitiveRequest) []aggregatedRow {
	type bucket struct {
		rows []int
		dims map[string]interface{}
	}
	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, i := range rowIdx {
		k := keyOf(data, i, gs)
		b, ok := buckets[k]
		if !ok {
			dims := make(map[string]interface{}, len(allColumns))
			for _, c := range allColumns {
				dims[c] = nil
			}
			for _, c := range gs {
				if col := data.Column(c); col != nil && i < col.Len() {
					dims[c] = col.Values[i]
				}
			}
			b = &bucket{dims: dims}
			buckets[k] = b
			order = append(order, k)
		}
		b.rows = append(b.rows, i)
	}

	isInSet := make(map[string]bool, len(gs))
	for _, c := range gs {
		isInSet[c] = true
	}

	out := make([]aggregatedRow, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		row := aggregatedRow{dims: b.dims, measures: make(map[string]interface{}, len(measures)), sortKey: k}
		for _, m := range measures {
			if m.Aggregate == "grouping" {
				row.measures[m.Alias] = boolToInt(!isInSet[m.Field])
				continue
			}
			filtered := b.rows
			if len(m.Filter) > 0 {
				filtered = filterSubset(data, b.rows, m.Filter)
			}
			row.measures[m.Alias] = computeAggregate(data, filtered, m)
		}
		out = append(out, row)
	}
	return out
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func filterSubset(t *core.Table, rowIdx []int, filters core.And) []int {
	out := make([]int, 0, len(rowIdx))
	for _, i := range rowIdx {
		if rowMatches(t, i, filters) {
			out = append(out, i)
		}
	}
	return out
}

// computeAggregate applies m.Aggregate over m.Field's values across
// rowIdx. Null values never participate except for count, which counts
// only non-null values (count(*) uses an empty Field and counts rows).
func computeAggregate(t *core.Table, rowIdx []int, m backend.PrimitiveRequest) interface{} {
	if m.Aggregate == "count" && m.Field == "" {
		return int64(len(rowIdx))
	}
	col := t.Column(m.Field)
	if col == nil {
		return nil
	}
	var sum float64
	var count int64
	var min, max float64
	first := true
	isInt := col.Field.Type == core.Integer
	for _, i := range rowIdx {
		if i >= col.Len() || col.Values[i] == nil {
			continue
		}
		v, err := cast.ToFloat64E(col.Values[i])
		if err != nil {
			continue
		}
		sum += v
		count++
		if first || v < min {
			min = v
		}
		if first || v > max {
			max = v
		}
		first = false
	}
	switch m.Aggregate {
	case "count":
		return count
	case "sum":
		if isInt {
			return int64(sum)
		}
		return sum
	case "avg":
		if count == 0 {
			return nil
		}
		return sum / float64(count)
	case "min":
		if count == 0 {
			return nil
		}
		if isInt {
			return int64(min)
		}
		return min
	case "max":
		if count == 0 {
			return nil
		}
		if isInt {
			return int64(max)
		}
		return max
	default:
		return nil
	}
}
