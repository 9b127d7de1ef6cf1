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

	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
)

type fakeFuncEvalContext struct {
	cols map[string]*core.Column
}

func (f *fakeFuncEvalContext) Column(_ measure.ScopeRef, alias string) (*core.Column, error) {
	c, ok := f.cols[alias]
	if !ok {
		return nil, core.ErrUnresolvedMeasure.New(alias)
	}
	return c, nil
}
func (f *fakeFuncEvalContext) RowCount(measure.ScopeRef) int { return 0 }
func (f *fakeFuncEvalContext) Table(measure.ScopeRef) (*core.Table, error) {
	return nil, core.ErrUnresolvedMeasure.New("table")
}

func TestLookupFunc_Coalesce(t *testing.T) {
	fn, ok := lookupFunc("coalesce")
	require.True(t, ok)
	require.NotNil(t, fn)
}

func TestLookupFunc_Unknown(t *testing.T) {
	_, ok := lookupFunc("not-registered")
	assert.False(t, ok)
}

func TestCoalesceFunc_FirstNonNull(t *testing.T) {
	a := measure.NewPrimitive("a", measure.Sum, "a", nil)
	b := measure.NewPrimitive("b", measure.Sum, "b", nil)
	ctx := &fakeFuncEvalContext{cols: map[string]*core.Column{
		"a": {Field: core.Field{Name: "a"}, Values: []interface{}{nil, 2.0}},
		"b": {Field: core.Field{Name: "b"}, Values: []interface{}{5.0, nil}},
	}}

	col, err := coalesceFunc(ctx, []measure.Measure{a, b})
	require.NoError(t, err)
	assert.Equal(t, 5.0, col.Values[0])
	assert.Equal(t, 2.0, col.Values[1])
}

func TestCoalesceFunc_NoOperands(t *testing.T) {
	col, err := coalesceFunc(&fakeFuncEvalContext{}, nil)
	require.NoError(t, err)
	assert.Empty(t, col.Values)
}
