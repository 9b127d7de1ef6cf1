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

	"github.com/stretchr/testify/assert"

	"github.com/squashql/squashql-go/core"
)

func rollupTable() *core.ColumnarTable {
	tbl := core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"FR", "US", nil}},
		&core.Column{Field: core.Field{Name: "revenue.sum", Type: core.Floating}, Values: []interface{}{10.0, 20.0, 30.0}},
	)
	return core.NewColumnarTable(tbl, []string{"country"}, []string{"revenue.sum"})
}

func TestReplaceTotalCellValues_SubstitutesNullRollupCells(t *testing.T) {
	ctbl := rollupTable()
	marker := func(core.Type) interface{} { return DefaultTotalMarker }

	ReplaceTotalCellValues(ctbl, []string{"country"}, marker)

	assert.Equal(t, []interface{}{"FR", "US", DefaultTotalMarker}, ctbl.Column("country").Values)
}

func TestReplaceTotalCellValues_LeavesNonRollupColumnsAlone(t *testing.T) {
	ctbl := rollupTable()
	marker := func(core.Type) interface{} { return DefaultTotalMarker }

	ReplaceTotalCellValues(ctbl, nil, marker)

	assert.Nil(t, ctbl.Column("country").Values[2])
}

func TestSuperAggregateRows_MarksRowsCarryingMarker(t *testing.T) {
	ctbl := rollupTable()
	marker := func(core.Type) interface{} { return DefaultTotalMarker }
	ReplaceTotalCellValues(ctbl, []string{"country"}, marker)

	bm := SuperAggregateRows(ctbl.Table, []string{"country"}, marker)

	assert.False(t, bm.Contains(0))
	assert.False(t, bm.Contains(1))
	assert.True(t, bm.Contains(2))
}

func TestSuperAggregateRows_EmptyFieldsYieldsEmptyBitmap(t *testing.T) {
	ctbl := rollupTable()
	marker := func(core.Type) interface{} { return DefaultTotalMarker }
	bm := SuperAggregateRows(ctbl.Table, nil, marker)
	assert.False(t, bm.Contains(0))
	assert.False(t, bm.Contains(1))
	assert.False(t, bm.Contains(2))
}
