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

package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squashql/squashql-go/core"
)

func coalesce(ctx EvalContext, operands []Measure) (*core.Column, error) {
	cols := make([]*core.Column, len(operands))
	for i, op := range operands {
		c, err := ctx.Column(Current, op.Alias())
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	out := &core.Column{Field: core.Field{Name: "coalesced", Type: core.Floating}, Values: make([]interface{}, cols[0].Len())}
	for i := range out.Values {
		for _, c := range cols {
			if c.Values[i] != nil {
				out.Values[i] = c.Values[i]
				break
			}
		}
	}
	return out, nil
}

func TestExpressionMeasure_AppliesFunc(t *testing.T) {
	a := NewPrimitive("a", Sum, "a", nil)
	b := NewPrimitive("b", Sum, "b", nil)
	tbl := core.NewTable(
		&core.Column{Field: core.Field{Name: "a", Type: core.Floating}, Values: []interface{}{nil, 2.0}},
		&core.Column{Field: core.Field{Name: "b", Type: core.Floating}, Values: []interface{}{5.0, nil}},
	)
	ctx := &fakeEvalContext{tables: map[ScopeRef]*core.Table{Current: tbl}}

	expr := NewExpression("coalesced", "coalesce", coalesce, a, b)
	require.Len(t, expr.Prerequisites(), 2)

	col, err := expr.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, col.Values[0])
	assert.Equal(t, 2.0, col.Values[1])
}

func TestExpressionMeasure_NoOperandsHasNoPrerequisites(t *testing.T) {
	expr := NewExpression("zero", "zero", nil)
	assert.Nil(t, expr.Prerequisites())
}

func TestExpressionMeasure_NilApplyErrors(t *testing.T) {
	expr := NewExpression("broken", "broken", nil)
	_, err := expr.Evaluate(&fakeEvalContext{})
	assert.Error(t, err)
}
