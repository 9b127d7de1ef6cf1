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

import "github.com/squashql/squashql-go/core"

// ConstantMeasure carries a fixed value, broadcast to every row. It has no
// prerequisites (§4.2).
type ConstantMeasure struct {
	MeasureAlias string
	Value        interface{}
	Type         core.Type
}

// NewConstant builds a ConstantMeasure.
func NewConstant(alias string, value interface{}, t core.Type) *ConstantMeasure {
	return &ConstantMeasure{MeasureAlias: alias, Value: value, Type: t}
}

func (c *ConstantMeasure) Alias() string                 { return c.MeasureAlias }
func (c *ConstantMeasure) Kind() Kind                    { return Constant }
func (c *ConstantMeasure) Prerequisites() []Prerequisite { return nil }

// Evaluate broadcasts Value to RowCount(Current) rows.
func (c *ConstantMeasure) Evaluate(ctx EvalContext) (*core.Column, error) {
	n := ctx.RowCount(Current)
	vals := make([]interface{}, n)
	for i := range vals {
		vals[i] = c.Value
	}
	return &core.Column{Field: core.Field{Name: c.MeasureAlias, Type: c.Type}, Values: vals}, nil
}
