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

	"github.com/squashql/squashql-go/core"
)

// filterRows returns the row indices of t matching every predicate in
// filters (an empty And matches every row, §3).
func filterRows(t *core.Table, filters core.And) []int {
	idx := make([]int, 0, t.Count())
	for i := 0; i < t.Count(); i++ {
		if rowMatches(t, i, filters) {
			idx = append(idx, i)
		}
	}
	return idx
}

func rowMatches(t *core.Table, row int, filters core.And) bool {
	for _, p := range filters {
		col := t.Column(p.Field)
		if col == nil || row >= col.Len() {
			return false
		}
		if !predicateMatches(col.Values[row], p) {
			return false
		}
	}
	return true
}

func predicateMatches(v interface{}, p core.Predicate) bool {
	switch p.Op {
	case core.Eq:
		return valuesEqual(v, p.Value)
	case core.Neq:
		return !valuesEqual(v, p.Value)
	case core.Lt, core.Lte, core.Gt, core.Gte:
		return compareOrdered(v, p.Value, p.Op)
	case core.In:
		candidates, ok := p.Value.([]interface{})
		if !ok {
			return false
		}
		for _, c := range candidates {
			if valuesEqual(v, c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, err := cast.ToFloat64E(a); err == nil {
		if bf, err := cast.ToFloat64E(b); err == nil {
			return af == bf
		}
	}
	return cast.ToString(a) == cast.ToString(b)
}

func compareOrdered(a, b interface{}, op core.CompareOp) bool {
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr != nil || berr != nil {
		as, bs := cast.ToString(a), cast.ToString(b)
		switch op {
		case core.Lt:
			return as < bs
		case core.Lte:
			return as <= bs
		case core.Gt:
			return as > bs
		case core.Gte:
			return as >= bs
		}
		return false
	}
	switch op {
	case core.Lt:
		return af < bf
	case core.Lte:
		return af <= bf
	case core.Gt:
		return af > bf
	case core.Gte:
		return af >= bf
	default:
		return false
	}
}
