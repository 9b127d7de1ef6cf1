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

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
)

// BuildPivotTable reshapes ctbl into the PivotTable view §3/§4.8
// describe: rows identified by dto.Rows, columns by dto.Columns, cells by
// dto.Values. §6.3 already rejects rollupColumns on a pivot query at
// resolve time (ErrIllegalArgument), so ctbl here never carries
// super-aggregate rows from ROLLUP -- only from explicit GROUPING SETS,
// which HiddenTotals can still ask to suppress.
func BuildPivotTable(ctbl *core.ColumnarTable, dto *analyzer.PivotDTO, totals *roaring.Bitmap) (*core.PivotTable, error) {
	for _, f := range dto.Rows {
		if !ctbl.HasColumn(f) {
			return nil, core.ErrUnknownField.New(f)
		}
	}
	for _, f := range dto.Columns {
		if !ctbl.HasColumn(f) {
			return nil, core.ErrUnknownField.New(f)
		}
	}
	for _, alias := range dto.Values {
		if !ctbl.HasColumn(alias) {
			return nil, core.ErrUnresolvedMeasure.New(alias)
		}
	}

	view := ctbl
	if dto.HiddenTotals && totals != nil {
		view = dropRows(ctbl, totals)
	}

	return &core.PivotTable{
		Table:        view,
		RowFields:    dto.Rows,
		ColFields:    dto.Columns,
		ValueAliases: dto.Values,
		HiddenTotals: dto.HiddenTotals,
	}, nil
}

// dropRows returns a copy of ctbl without the rows marked in drop.
func dropRows(ctbl *core.ColumnarTable, drop *roaring.Bitmap) *core.ColumnarTable {
	cols := make([]*core.Column, len(ctbl.Columns()))
	for i, c := range ctbl.Columns() {
		cols[i] = &core.Column{Field: c.Field}
	}
	for row := 0; row < ctbl.Count(); row++ {
		if drop.Contains(uint64(row)) {
			continue
		}
		for i, c := range ctbl.Columns() {
			cols[i].Values = append(cols[i].Values, c.Values[row])
		}
	}
	return core.NewColumnarTable(core.NewTable(cols...), ctbl.GroupingFields, ctbl.MeasureAliases)
}
