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
	"github.com/pilosa/pilosa/roaring"

	"github.com/squashql/squashql-go/core"
)

// ReplaceTotalCellValues substitutes marker(field.Type) for every null
// cell of ctbl's grouping columns named in rollupFields (§4.8 step 3, §8
// property 5). Non-rollup grouping columns are left untouched: the
// backend contract (§6.1) never nulls them out, so a null there would be
// a genuine missing value, not a total marker.
func ReplaceTotalCellValues(ctbl *core.ColumnarTable, rollupFields []string, marker TotalMarkerFunc) {
	isRollup := make(map[string]bool, len(rollupFields))
	for _, f := range rollupFields {
		isRollup[f] = true
	}
	for _, col := range ctbl.Columns() {
		if !isRollup[col.Field.Name] {
			continue
		}
		sentinel := marker(col.Field.Type)
		for i, v := range col.Values {
			if v == nil {
				col.Values[i] = sentinel
			}
		}
	}
}

// SuperAggregateRows marks every row of tbl that carries marker in at
// least one of fields -- a ROLLUP/GROUPING-SETS super-aggregate row, once
// ReplaceTotalCellValues has run -- as a *roaring.Bitmap: the same row-
// set-membership structure the teacher's sql/index/pilosa package uses
// for index lookups, repurposed here as a row bitmask so a consumer (the
// pivot builder's hidden-totals filter, §4.8 "hidden totals suppressed
// from the pivoted view") can test row membership in O(1) instead of
// re-scanning every field per row.
func SuperAggregateRows(tbl *core.Table, fields []string, marker TotalMarkerFunc) *roaring.Bitmap {
	bm := roaring.NewBitmap()
	if len(fields) == 0 {
		return bm
	}
	cols := make([]*core.Column, 0, len(fields))
	for _, f := range fields {
		if c := tbl.Column(f); c != nil {
			cols = append(cols, c)
		}
	}
	for row := 0; row < tbl.Count(); row++ {
		for _, c := range cols {
			if row < c.Len() && c.Values[row] == marker(c.Field.Type) {
				_, _ = bm.Add(uint64(row))
				break
			}
		}
	}
	return bm
}
