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
	"testing"

	"github.com/pilosa/pilosa/roaring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
)

func pivotSourceTable() *core.ColumnarTable {
	tbl := core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"FR", "FR", "US", "US"}},
		&core.Column{Field: core.Field{Name: "year", Type: core.Integer}, Values: []interface{}{int64(2023), int64(2024), int64(2023), int64(2024)}},
		&core.Column{Field: core.Field{Name: "revenue.sum", Type: core.Floating}, Values: []interface{}{10.0, 15.0, 20.0, 25.0}},
	)
	return core.NewColumnarTable(tbl, []string{"country", "year"}, []string{"revenue.sum"})
}

func TestBuildPivotTable_AssignsRowAndColFields(t *testing.T) {
	ctbl := pivotSourceTable()
	dto := &analyzer.PivotDTO{Rows: []string{"country"}, Columns: []string{"year"}, Values: []string{"revenue.sum"}}

	pivot, err := BuildPivotTable(ctbl, dto, roaring.NewBitmap())
	require.NoError(t, err)

	assert.Equal(t, []string{"country"}, pivot.RowFields)
	assert.Equal(t, []string{"year"}, pivot.ColFields)
	assert.Equal(t, []string{"revenue.sum"}, pivot.ValueAliases)
	assert.Equal(t, 4, pivot.Table.Count())
}

func TestBuildPivotTable_UnknownRowFieldErrors(t *testing.T) {
	ctbl := pivotSourceTable()
	dto := &analyzer.PivotDTO{Rows: []string{"nonexistent"}, Values: []string{"revenue.sum"}}

	_, err := BuildPivotTable(ctbl, dto, roaring.NewBitmap())
	assert.Error(t, err)
}

func TestBuildPivotTable_UnknownValueAliasErrors(t *testing.T) {
	ctbl := pivotSourceTable()
	dto := &analyzer.PivotDTO{Rows: []string{"country"}, Values: []string{"cost.sum"}}

	_, err := BuildPivotTable(ctbl, dto, roaring.NewBitmap())
	assert.Error(t, err)
}

func TestBuildPivotTable_HiddenTotalsDropsMarkedRows(t *testing.T) {
	ctbl := pivotSourceTable()
	dto := &analyzer.PivotDTO{Rows: []string{"country"}, Columns: []string{"year"}, Values: []string{"revenue.sum"}, HiddenTotals: true}

	totals := roaring.NewBitmap()
	_, _ = totals.Add(uint64(1)) // drop the FR/2024 row

	pivot, err := BuildPivotTable(ctbl, dto, totals)
	require.NoError(t, err)

	require.Equal(t, 3, pivot.Table.Count())
	for i, c := range pivot.Table.Column("country").Values {
		if c == "FR" {
			assert.NotEqual(t, int64(2024), pivot.Table.Column("year").Values[i])
		}
	}
}
