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
	"github.com/stretchr/testify/require"

	"github.com/squashql/squashql-go/core/measure"
)

func TestGraphBuilder_AlwaysIncludesCount(t *testing.T) {
	r := NewResolver(salesCatalog())
	compiled, err := r.Resolve(&QueryDTO{
		TableRef: "sales",
		Columns:  []string{"country"},
		Measures: []*MeasureDTO{
			{Alias: "revenue.sum", Kind: measure.Primitive, Agg: measure.Sum, Field: "revenue"},
		},
	})
	require.NoError(t, err)

	g, err := NewGraphBuilder().Build(compiled)
	require.NoError(t, err)

	found := false
	for _, n := range g.Nodes() {
		if n.Key.Measure.Alias() == "count" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGraphBuilder_ComputedMeasureAddsOperandEdges(t *testing.T) {
	r := NewResolver(salesCatalog())
	compiled, err := r.Resolve(&QueryDTO{
		TableRef: "sales",
		Columns:  []string{"country"},
		Measures: []*MeasureDTO{
			{
				Alias: "margin", Kind: measure.Computed, Op: measure.Sub,
				Left:  &MeasureDTO{Alias: "revenue.sum", Kind: measure.Primitive, Agg: measure.Sum, Field: "revenue"},
				Right: &MeasureDTO{Alias: "cost.sum", Kind: measure.Primitive, Agg: measure.Sum, Field: "cost"},
			},
		},
	})
	require.NoError(t, err)

	g, err := NewGraphBuilder().Build(compiled)
	require.NoError(t, err)

	byAlias := make(map[string]bool)
	for _, n := range g.Nodes() {
		byAlias[n.Key.Measure.Alias()] = true
	}
	assert.True(t, byAlias["margin"])
	assert.True(t, byAlias["revenue.sum"])
	assert.True(t, byAlias["cost.sum"])
}

func TestGraphBuilder_RollupAddsGroupingMeasure(t *testing.T) {
	r := NewResolver(salesCatalog())
	compiled, err := r.Resolve(&QueryDTO{
		TableRef:      "sales",
		Columns:       []string{"country"},
		RollupColumns: []string{"country"},
		Measures: []*MeasureDTO{
			{Alias: "revenue.sum", Kind: measure.Primitive, Agg: measure.Sum, Field: "revenue"},
		},
	})
	require.NoError(t, err)

	g, err := NewGraphBuilder().Build(compiled)
	require.NoError(t, err)

	found := false
	for _, n := range g.Nodes() {
		if n.Key.Measure.Alias() == measure.GroupingAlias("country") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGraphBuilder_ComparisonMeasureAddsShiftedScopeNode(t *testing.T) {
	r := NewResolver(salesCatalog())
	compiled, err := r.Resolve(&QueryDTO{
		TableRef: "sales",
		Columns:  []string{"country", "year"},
		Measures: []*MeasureDTO{
			{
				Alias: "revenue.vs_prev", Kind: measure.Comparison,
				ShiftField: "year", ShiftOffset: -1,
				Base: &MeasureDTO{Alias: "revenue.sum", Kind: measure.Primitive, Agg: measure.Sum, Field: "revenue"},
			},
		},
	})
	require.NoError(t, err)

	g, err := NewGraphBuilder().Build(compiled)
	require.NoError(t, err)

	shiftedFound := false
	for _, n := range g.Nodes() {
		if n.Key.Measure.Alias() == "revenue.sum" && n.Key.Scope.Shift != nil {
			shiftedFound = true
		}
	}
	assert.True(t, shiftedFound, "expected a node for revenue.sum at the shifted scope")
}
