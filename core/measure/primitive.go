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
	"github.com/squashql/squashql-go/core"
)

// PrimitiveMeasure is computed directly by the backend in a single
// aggregation (§3, §4.2). It has no child measures.
type PrimitiveMeasure struct {
	MeasureAlias string
	Function     Agg
	Field        string
	Filter       core.And
}

// NewPrimitive builds a PrimitiveMeasure.
func NewPrimitive(alias string, fn Agg, field string, filter core.And) *PrimitiveMeasure {
	return &PrimitiveMeasure{MeasureAlias: alias, Function: fn, Field: field, Filter: filter}
}

// NewGrouping builds the synthetic grouping-indicator measure for field.
// Its alias follows the fixed GroupingAlias schema so Cacheable can reject
// it by prefix instead of re-deriving the field name heuristically.
func NewGrouping(field string) *PrimitiveMeasure {
	return &PrimitiveMeasure{MeasureAlias: GroupingAlias(field), Function: Grouping, Field: field}
}

func (p *PrimitiveMeasure) Alias() string { return p.MeasureAlias }
func (p *PrimitiveMeasure) Kind() Kind    { return Primitive }

// Prerequisites for a primitive measure is just itself at the current
// scope: the backend computes it in one aggregation, there is nothing to
// decompose further (§4.2).
func (p *PrimitiveMeasure) Prerequisites() []Prerequisite {
	return []Prerequisite{{ScopeRef: Current, Measure: p}}
}

// Evaluate is never called on a primitive measure; the prefetch stage
// materializes it directly from the backend (§4.6).
func (p *PrimitiveMeasure) Evaluate(EvalContext) (*core.Column, error) {
	return nil, core.ErrUnresolvedMeasure.New(p.MeasureAlias)
}
