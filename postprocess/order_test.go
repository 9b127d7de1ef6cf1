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

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
)

func unorderedCountryTable() *core.ColumnarTable {
	tbl := core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"US", "FR", DefaultTotalMarker}},
		&core.Column{Field: core.Field{Name: "revenue.sum", Type: core.Floating}, Values: []interface{}{20.0, 10.0, 30.0}},
	)
	return core.NewColumnarTable(tbl, []string{"country"}, []string{"revenue.sum"})
}

func marker() TotalMarkerFunc { return func(core.Type) interface{} { return DefaultTotalMarker } }

func TestOrderRows_AscendingByDefaultDimension(t *testing.T) {
	ctbl := unorderedCountryTable()
	OrderRows(ctbl, nil, marker())
	assert.Equal(t, []interface{}{"FR", "US", DefaultTotalMarker}, ctbl.Column("country").Values)
}

func TestOrderRows_DescendingSpecReversesOrder(t *testing.T) {
	ctbl := unorderedCountryTable()
	OrderRows(ctbl, []analyzer.OrderSpec{{Field: "country", Descending: true, TotalsLast: true}}, marker())
	assert.Equal(t, []interface{}{"US", "FR", DefaultTotalMarker}, ctbl.Column("country").Values)
}

func TestOrderRows_TotalsFirstWhenConfigured(t *testing.T) {
	ctbl := unorderedCountryTable()
	OrderRows(ctbl, []analyzer.OrderSpec{{Field: "country", TotalsLast: false}}, marker())
	assert.Equal(t, DefaultTotalMarker, ctbl.Column("country").Values[0])
}

func TestOrderRows_PermutesAllColumnsTogether(t *testing.T) {
	ctbl := unorderedCountryTable()
	OrderRows(ctbl, nil, marker())
	// FR must keep its associated revenue (10.0) after reordering.
	assert.Equal(t, "FR", ctbl.Column("country").Values[0])
	assert.Equal(t, 10.0, ctbl.Column("revenue.sum").Values[0])
}

func TestCompareValues_NilSortsFirst(t *testing.T) {
	assert.Equal(t, -1, compareValues(nil, "x"))
	assert.Equal(t, 1, compareValues("x", nil))
	assert.Equal(t, 0, compareValues(nil, nil))
}

func TestCompareValues_Numeric(t *testing.T) {
	assert.Equal(t, -1, compareValues(1.0, 2.0))
	assert.Equal(t, 1, compareValues(int64(5), int64(2)))
}
