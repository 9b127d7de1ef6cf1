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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squashql/squashql-go/core"
)

func TestFilterRows_EmptyAndMatchesEveryRow(t *testing.T) {
	idx := filterRows(salesData(), core.And{})
	assert.Equal(t, []int{0, 1, 2}, idx)
}

func TestFilterRows_EqNarrowsToMatchingRows(t *testing.T) {
	idx := filterRows(salesData(), core.And{{Field: "country", Op: core.Eq, Value: "FR"}})
	assert.Equal(t, []int{0, 1}, idx)
}

func TestFilterRows_UnknownFieldMatchesNothing(t *testing.T) {
	idx := filterRows(salesData(), core.And{{Field: "nonexistent", Op: core.Eq, Value: "FR"}})
	assert.Empty(t, idx)
}

func TestPredicateMatches_Neq(t *testing.T) {
	assert.True(t, predicateMatches("FR", core.Predicate{Op: core.Neq, Value: "US"}))
	assert.False(t, predicateMatches("FR", core.Predicate{Op: core.Neq, Value: "FR"}))
}

func TestPredicateMatches_NumericComparisons(t *testing.T) {
	assert.True(t, predicateMatches(int64(2024), core.Predicate{Op: core.Gt, Value: int64(2023)}))
	assert.True(t, predicateMatches(int64(2023), core.Predicate{Op: core.Lte, Value: int64(2023)}))
	assert.False(t, predicateMatches(int64(2023), core.Predicate{Op: core.Gte, Value: int64(2024)}))
}

func TestPredicateMatches_In(t *testing.T) {
	p := core.Predicate{Op: core.In, Value: []interface{}{"FR", "DE"}}
	assert.True(t, predicateMatches("FR", p))
	assert.False(t, predicateMatches("US", p))
}

func TestPredicateMatches_InWithNonSliceValueIsFalse(t *testing.T) {
	p := core.Predicate{Op: core.In, Value: "FR"}
	assert.False(t, predicateMatches("FR", p))
}

func TestValuesEqual_NumericVsStringFallback(t *testing.T) {
	assert.True(t, valuesEqual(int64(2023), 2023.0))
	assert.True(t, valuesEqual("abc", "abc"))
	assert.False(t, valuesEqual("abc", "def"))
}

func TestValuesEqual_BothNilIsEqual(t *testing.T) {
	assert.True(t, valuesEqual(nil, nil))
	assert.False(t, valuesEqual(nil, "x"))
}

func TestCompareOrdered_StringFallbackWhenNotNumeric(t *testing.T) {
	assert.True(t, compareOrdered("apple", "banana", core.Lt))
	assert.False(t, compareOrdered("banana", "apple", core.Lt))
}
