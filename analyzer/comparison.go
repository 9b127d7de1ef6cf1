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
)

// previousPositionRef builds the reference-position function for a
// Comparison measure shifting shiftField by offset (§4.2, §4.6): for each
// row of the current scope's table, it locates the row of the shifted
// scope's table that matches on every other grouping column and whose
// shiftField value equals the current row's plus offset. A missing
// reference row yields -1, which Evaluate turns into null.
func previousPositionRef(shiftField string, offset int) measure.RefFunc {
	return func(currentRow int, current, shifted *core.Table) int {
		curCol := current.Column(shiftField)
		shiftedCol := shifted.Column(shiftField)
		if curCol == nil || shiftedCol == nil || currentRow >= curCol.Len() {
			return -1
		}
		target, ok := shiftTargetValue(curCol.Values[currentRow], offset)
		if !ok {
			return -1
		}
		for j := 0; j < shifted.Count(); j++ {
			if shiftedCol.Values[j] != target {
				continue
			}
			if !rowMatchesExceptField(current, currentRow, shifted, j, shiftField) {
				continue
			}
			return j
		}
		return -1
	}
}

// shiftTargetValue applies offset to a shiftField cell value, supporting
// the integer-dimension case (e.g. "year") a period-over-period comparison
// shifts over. Non-integer shift dimensions are not yet supported and
// yield no target.
func shiftTargetValue(v interface{}, offset int) (interface{}, bool) {
	switch n := v.(type) {
	case int64:
		return n + int64(offset), true
	case int:
		return int64(n + offset), true
	default:
		return nil, false
	}
}

// rowMatchesExceptField reports whether row i of a and row j of b hold
// equal values in every grouping column other than skip.
func rowMatchesExceptField(a *core.Table, i int, b *core.Table, j int, skip string) bool {
	for _, col := range a.Columns() {
		if col.Field.Name == skip {
			continue
		}
		bc := b.Column(col.Field.Name)
		if bc == nil {
			continue
		}
		if i >= len(col.Values) || j >= len(bc.Values) {
			return false
		}
		if col.Values[i] != bc.Values[j] {
			return false
		}
	}
	return true
}
