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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squashql/squashql-go/core"
)

func yearTable(countries, years []interface{}, revenue []interface{}) *core.Table {
	return core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: countries},
		&core.Column{Field: core.Field{Name: "year", Type: core.Integer}, Values: years},
		&core.Column{Field: core.Field{Name: "revenue.sum", Type: core.Floating}, Values: revenue},
	)
}

func TestPreviousPositionRef_FindsExactOffsetMatch(t *testing.T) {
	current := yearTable(
		[]interface{}{"FR", "FR"},
		[]interface{}{int64(2023), int64(2024)},
		[]interface{}{10.0, 15.0},
	)
	shifted := yearTable(
		[]interface{}{"FR", "FR", "FR"},
		[]interface{}{int64(2022), int64(2023), int64(2024)},
		[]interface{}{8.0, 10.0, 15.0},
	)

	ref := previousPositionRef("year", -1)
	assert.Equal(t, 0, ref(0, current, shifted)) // 2023 -> 2022 at index 0
	assert.Equal(t, 1, ref(1, current, shifted)) // 2024 -> 2023 at index 1
}

func TestPreviousPositionRef_TwoPeriodsAgoDiffersFromOnePeriod(t *testing.T) {
	current := yearTable([]interface{}{"FR"}, []interface{}{int64(2024)}, []interface{}{15.0})
	shifted := yearTable(
		[]interface{}{"FR", "FR", "FR"},
		[]interface{}{int64(2022), int64(2023), int64(2024)},
		[]interface{}{8.0, 10.0, 15.0},
	)

	onePeriod := previousPositionRef("year", -1)
	twoPeriods := previousPositionRef("year", -2)

	assert.Equal(t, 1, onePeriod(0, current, shifted))
	assert.Equal(t, 0, twoPeriods(0, current, shifted))
}

func TestPreviousPositionRef_MissingReferenceYieldsNegativeOne(t *testing.T) {
	current := yearTable([]interface{}{"FR"}, []interface{}{int64(2023)}, []interface{}{10.0})
	shifted := yearTable([]interface{}{"FR"}, []interface{}{int64(2023)}, []interface{}{10.0})

	ref := previousPositionRef("year", -1)
	assert.Equal(t, -1, ref(0, current, shifted))
}

func TestPreviousPositionRef_MatchesOtherColumnsToo(t *testing.T) {
	current := yearTable(
		[]interface{}{"FR", "US"},
		[]interface{}{int64(2024), int64(2024)},
		[]interface{}{15.0, 25.0},
	)
	shifted := yearTable(
		[]interface{}{"FR", "US"},
		[]interface{}{int64(2023), int64(2023)},
		[]interface{}{10.0, 20.0},
	)

	ref := previousPositionRef("year", -1)
	assert.Equal(t, 0, ref(0, current, shifted)) // FR row must match FR reference
	assert.Equal(t, 1, ref(1, current, shifted)) // US row must match US reference
}

func TestRowMatchesExceptField(t *testing.T) {
	a := yearTable([]interface{}{"FR"}, []interface{}{int64(2024)}, []interface{}{15.0})
	b := yearTable([]interface{}{"FR"}, []interface{}{int64(2023)}, []interface{}{10.0})

	assert.True(t, rowMatchesExceptField(a, 0, b, 0, "year"))
	assert.False(t, rowMatchesExceptField(a, 0, b, 0, "country"))
}
