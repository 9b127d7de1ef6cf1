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
	"github.com/shopspring/decimal"

	"github.com/squashql/squashql-go/core"
)

// ComputedMeasure is a binary arithmetic function of two other measures at
// the same scope (§3, §4.2). Left and Right are child nodes in the measure
// expression tree.
type ComputedMeasure struct {
	MeasureAlias string
	Operator     Op
	Left, Right  Measure
}

// NewComputed builds a ComputedMeasure, e.g. NewComputed("margin", Sub,
// revenue, cost).
func NewComputed(alias string, op Op, left, right Measure) *ComputedMeasure {
	return &ComputedMeasure{MeasureAlias: alias, Operator: op, Left: left, Right: right}
}

func (c *ComputedMeasure) Alias() string { return c.MeasureAlias }
func (c *ComputedMeasure) Kind() Kind    { return Computed }

// Prerequisites is the union of the two operands' prerequisites at the
// current scope (§4.2 "Computed (binary op): emits the union of its
// children's prerequisites at the same scope").
func (c *ComputedMeasure) Prerequisites() []Prerequisite {
	return []Prerequisite{
		{ScopeRef: Current, Measure: c.Left},
		{ScopeRef: Current, Measure: c.Right},
	}
}

// Evaluate reads the two operand columns and applies Operator row by row,
// with null propagation: any null operand yields a null result, and
// division by zero yields null rather than an error (§4.6).
func (c *ComputedMeasure) Evaluate(ctx EvalContext) (*core.Column, error) {
	left, err := ctx.Column(Current, c.Left.Alias())
	if err != nil {
		return nil, errors.Wrapf(err, "computed measure %s: left operand", c.MeasureAlias)
	}
	right, err := ctx.Column(Current, c.Right.Alias())
	if err != nil {
		return nil, errors.Wrapf(err, "computed measure %s: right operand", c.MeasureAlias)
	}
	if left.Len() != right.Len() {
		return nil, errors.Errorf("computed measure %s: operand length mismatch %d != %d", c.MeasureAlias, left.Len(), right.Len())
	}

	fieldType := core.Floating
	if c.Operator != Div {
		fieldType = numericResultType(left, right)
	}
	out := &core.Column{
		Field:  core.Field{Name: c.MeasureAlias, Type: fieldType},
		Values: make([]interface{}, left.Len()),
	}
	for i := range left.Values {
		lv, lok := toDecimal(left.Values[i])
		rv, rok := toDecimal(right.Values[i])
		if !lok || !rok {
			out.Values[i] = nil
			continue
		}
		switch c.Operator {
		case Add:
			out.Values[i] = decimalResult(lv.Add(rv), fieldType)
		case Sub:
			out.Values[i] = decimalResult(lv.Sub(rv), fieldType)
		case Mul:
			out.Values[i] = decimalResult(lv.Mul(rv), fieldType)
		case Div:
			if rv.IsZero() {
				out.Values[i] = nil
				continue
			}
			out.Values[i], _ = lv.DivRound(rv, 12).Float64()
		default:
			return nil, ErrUnknownOp
		}
	}
	return out, nil
}

// numericResultType promotes to Floating unless both operands are
// integers, matching "integer / integer -> floating when ratio" for Div
// and a conservative widest-type rule for Add/Sub/Mul (§4.6).
func numericResultType(cols ...*core.Column) core.Type {
	for _, c := range cols {
		if c.Field.Type == core.Floating {
			return core.Floating
		}
	}
	return core.Integer
}

func decimalResult(d decimal.Decimal, t core.Type) interface{} {
	if t == core.Integer {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case float64:
		return decimal.NewFromFloat(n), true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}
