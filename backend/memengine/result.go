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
	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/core"
)

// buildResultTable assembles the final columnar table: dimension columns
// (exactly scope.Columns, in order) followed by one column per requested
// measure in request order, matching the QueryEngine.Execute contract
// (§6.1).
func buildResultTable(schema core.Schema, columns []string, measures []backend.PrimitiveRequest, rows []aggregatedRow) *core.Table {
	cols := make([]*core.Column, 0, len(columns)+len(measures))
	for _, c := range columns {
		col := &core.Column{Field: core.Field{Name: c, Type: fieldType(schema, c)}, Values: make([]interface{}, len(rows))}
		for i, r := range rows {
			col.Values[i] = r.dims[c]
		}
		cols = append(cols, col)
	}
	for _, m := range measures {
		col := &core.Column{Field: core.Field{Name: m.Alias, Type: measureResultType(schema, m)}, Values: make([]interface{}, len(rows))}
		for i, r := range rows {
			col.Values[i] = r.measures[m.Alias]
		}
		cols = append(cols, col)
	}
	return core.NewTable(cols...)
}

func measureResultType(schema core.Schema, m backend.PrimitiveRequest) core.Type {
	switch m.Aggregate {
	case "count", "grouping":
		return core.Integer
	case "avg":
		return core.Floating
	default:
		if m.Field == "" {
			return core.Floating
		}
		return fieldType(schema, m.Field)
	}
}
