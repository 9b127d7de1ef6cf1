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

// Func is a named function an ExpressionMeasure applies to its operands'
// columns, for computations Computed's fixed binary-op shape doesn't
// cover (e.g. "coalesce", "percentOfTotal").
type Func func(ctx EvalContext, operands []Measure) (*core.Column, error)

// ExpressionMeasure applies an arbitrary named function over operand
// measures evaluated at the current scope (§3 "expression" variant). With
// zero operands it behaves like a Constant: no prerequisites.
type ExpressionMeasure struct {
	MeasureAlias string
	Name         string
	Operands     []Measure
	Apply        Func
}

// NewExpression builds an ExpressionMeasure.
func NewExpression(alias, name string, apply Func, operands ...Measure) *ExpressionMeasure {
	return &ExpressionMeasure{MeasureAlias: alias, Name: name, Operands: operands, Apply: apply}
}

func (e *ExpressionMeasure) Alias() string { return e.MeasureAlias }
func (e *ExpressionMeasure) Kind() Kind    { return Expression }

// Prerequisites is the union of every operand's prerequisites at the
// current scope, or nil for a zero-operand expression (§4.2).
func (e *ExpressionMeasure) Prerequisites() []Prerequisite {
	if len(e.Operands) == 0 {
		return nil
	}
	prereqs := make([]Prerequisite, 0, len(e.Operands))
	for _, op := range e.Operands {
		prereqs = append(prereqs, Prerequisite{ScopeRef: Current, Measure: op})
	}
	return prereqs
}

// Evaluate delegates to Apply.
func (e *ExpressionMeasure) Evaluate(ctx EvalContext) (*core.Column, error) {
	if e.Apply == nil {
		return nil, errors.Errorf("expression measure %s: no Apply function", e.MeasureAlias)
	}
	return e.Apply(ctx, e.Operands)
}
