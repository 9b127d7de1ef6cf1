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

import "github.com/squashql/squashql-go/core"

// SelectAndOrderColumns drops every column of tbl not named in
// dimensions or measures, and reorders the survivors to dimensions (in
// declared order) followed by measures (in declared order), per §4.8
// step 2 and §8 property 6. Backend-only columns -- extra grouping
// columns the resolver added for a Vector/Comparison measure's internal
// bookkeeping (§4.1) -- are dropped here because they were never in
// dimensions to begin with.
func SelectAndOrderColumns(tbl *core.Table, dimensions, measures []string) *core.ColumnarTable {
	cols := make([]*core.Column, 0, len(dimensions)+len(measures))
	for _, name := range dimensions {
		if c := tbl.Column(name); c != nil {
			cols = append(cols, c)
		}
	}
	for _, name := range measures {
		if c := tbl.Column(name); c != nil {
			cols = append(cols, c)
		}
	}
	return core.NewColumnarTable(core.NewTable(cols...), append([]string{}, dimensions...), append([]string{}, measures...))
}
