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
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/core"
)

// RefFunc maps a row in the current scope's table to the index of its
// reference row in the shifted scope's table, or -1 if there is no
// reference (missing reference => null, §4.6).
type RefFunc func(currentRow int, current, shifted *core.Table) int

// ComparisonMeasure defines a reference-position comparison (e.g.
// "previous period") between Base at the current scope and Base again at
// a scope shifted by Shift (§3, §4.2, §4.6).
type ComparisonMeasure struct {
	MeasureAlias string
	Base         Measure
	Shift        Shift
	RefPosition  RefFunc
}

// NewComparison builds a ComparisonMeasure, e.g. a "revenue vs previous
// period" measure shifting the "period" dimension back by one.
func NewComparison(alias string, base Measure, shift Shift, ref RefFunc) *ComparisonMeasure {
	return &ComparisonMeasure{MeasureAlias: alias, Base: base, Shift: shift, RefPosition: ref}
}

func (c *ComparisonMeasure) Alias() string { return c.MeasureAlias }
func (c *ComparisonMeasure) Kind() Kind    { return Comparison }

// Prerequisites needs Base at the current scope AND Base again at the
// shifted scope (§4.2 "Comparison / window").
func (c *ComparisonMeasure) Prerequisites() []Prerequisite {
	return []Prerequisite{
		{ScopeRef: Current, Measure: c.Base},
		{ScopeRef: Shifted, Shift: &c.Shift, Measure: c.Base},
	}
}

// Evaluate looks up, for each current-scope row, its reference row in the
// shifted scope via RefPosition, and subtracts: result = current - shifted
// reference value. A missing reference yields null.
func (c *ComparisonMeasure) Evaluate(ctx EvalContext) (*core.Column, error) {
	current, err := ctx.Column(Current, c.Base.Alias())
	if err != nil {
		return nil, errors.Wrapf(err, "comparison measure %s: current scope", c.MeasureAlias)
	}
	shifted, err := ctx.Column(Shifted, c.Base.Alias())
	if err != nil {
		return nil, errors.Wrapf(err, "comparison measure %s: shifted scope", c.MeasureAlias)
	}
	currentTable, err := ctx.Table(Current)
	if err != nil {
		return nil, errors.Wrapf(err, "comparison measure %s: current scope table", c.MeasureAlias)
	}
	shiftedTable, err := ctx.Table(Shifted)
	if err != nil {
		return nil, errors.Wrapf(err, "comparison measure %s: shifted scope table", c.MeasureAlias)
	}

	out := &core.Column{
		Field:  core.Field{Name: c.MeasureAlias, Type: core.Floating},
		Values: make([]interface{}, current.Len()),
	}
	for i := range current.Values {
		refIdx := c.RefPosition(i, currentTable, shiftedTable)
		if refIdx < 0 || refIdx >= shifted.Len() {
			out.Values[i] = nil
			continue
		}
		cv, cok := toDecimal(current.Values[i])
		sv, sok := toDecimal(shifted.Values[refIdx])
		if !cok || !sok {
			out.Values[i] = nil
			continue
		}
		out.Values[i], _ = cv.Sub(sv).Float64()
	}
	return out, nil
}
