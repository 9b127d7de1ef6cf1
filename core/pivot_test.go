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

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPivotTable_Shape(t *testing.T) {
	ctbl := NewColumnarTable(NewTable(countryColumn()), []string{"country"}, []string{"revenue.sum"})
	pivot := &PivotTable{
		Table:        ctbl,
		RowFields:    []string{"country"},
		ColFields:    []string{"year"},
		ValueAliases: []string{"revenue.sum"},
		HiddenTotals: true,
	}

	assert.Same(t, ctbl, pivot.Table)
	assert.Equal(t, []string{"country"}, pivot.RowFields)
	assert.Equal(t, []string{"year"}, pivot.ColFields)
	assert.True(t, pivot.HiddenTotals)
}
