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
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
)

// registeredFuncs backs ExpressionMeasure resolution for the "expression"
// measure variant (§3). New functions are added here rather than given
// their own Measure implementation, the way the teacher's function
// registry (sql/expression/function) keeps built-ins in one table instead
// of one file per function.
var registeredFuncs = map[string]measure.Func{
	"coalesce": coalesceFunc,
}

func lookupFunc(name string) (measure.Func, bool) {
	fn, ok := registeredFuncs[name]
	return fn, ok
}

// coalesceFunc returns the first non-null operand value per row.
func coalesceFunc(ctx measure.EvalContext, operands []measure.Measure) (*core.Column, error) {
	if len(operands) == 0 {
		return &core.Column{Field: core.Field{Name: "coalesce", Type: core.String}}, nil
	}
	cols := make([]*core.Column, len(operands))
	for i, op := range operands {
		c, err := ctx.Column(measure.Current, op.Alias())
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	out := &core.Column{
		Field:  core.Field{Name: "coalesce", Type: cols[0].Field.Type},
		Values: make([]interface{}, cols[0].Len()),
	}
	for i := range out.Values {
		for _, c := range cols {
			if i < c.Len() && c.Values[i] != nil {
				out.Values[i] = c.Values[i]
				break
			}
		}
	}
	return out, nil
}
