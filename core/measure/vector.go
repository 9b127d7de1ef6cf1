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
	"fmt"

	"github.com/squashql/squashql-go/core"
)

// VectorMeasure carries a list of per-bucket values (e.g. a sparkline of
// monthly revenue) rather than a single scalar per row. It wraps a
// Wrapped measure fetched across every value of VectorField and re-groups
// the results into one array cell per grouping row.
type VectorMeasure struct {
	MeasureAlias string
	Wrapped      Measure
	VectorField  string
}

// NewVector builds a VectorMeasure.
func NewVector(alias string, wrapped Measure, vectorField string) *VectorMeasure {
	return &VectorMeasure{MeasureAlias: alias, Wrapped: wrapped, VectorField: vectorField}
}

func (v *VectorMeasure) Alias() string { return v.MeasureAlias }
func (v *VectorMeasure) Kind() Kind    { return Vector }

// Prerequisites needs its wrapped measure at the current scope; the
// current scope's grouping columns are expected to already include
// VectorField (added by the resolver when it compiles a vector measure).
func (v *VectorMeasure) Prerequisites() []Prerequisite {
	return []Prerequisite{{ScopeRef: Current, Measure: v.Wrapped}}
}

// Evaluate groups the wrapped measure's per-row values by every other
// grouping column, collecting VectorField's values into an ordered slice
// per group. Vector measures are non-primitive, so Cacheable always
// rejects them regardless of alias (§4.7).
func (v *VectorMeasure) Evaluate(ctx EvalContext) (*core.Column, error) {
	wrapped, err := ctx.Column(Current, v.Wrapped.Alias())
	if err != nil {
		return nil, err
	}
	table, err := ctx.Table(Current)
	if err != nil {
		return nil, err
	}
	vecCol := table.Column(v.VectorField)
	if vecCol == nil {
		return nil, core.ErrUnknownField.New(v.VectorField)
	}

	type groupKey string
	order := make([]groupKey, 0)
	groups := make(map[groupKey][]interface{})
	keyOf := make(map[groupKey][]interface{})

	for i := 0; i < wrapped.Len(); i++ {
		var keyParts []interface{}
		for _, col := range table.Columns() {
			if col.Field.Name == v.VectorField || col.Field.Name == v.Wrapped.Alias() {
				continue
			}
			keyParts = append(keyParts, col.Values[i])
		}
		k := groupKey(fmtKey(keyParts))
		if _, ok := groups[k]; !ok {
			order = append(order, k)
			keyOf[k] = keyParts
		}
		groups[k] = append(groups[k], wrapped.Values[i])
	}

	out := &core.Column{Field: core.Field{Name: v.MeasureAlias, Type: core.Opaque}}
	for _, k := range order {
		out.Values = append(out.Values, groups[k])
	}
	return out, nil
}

func fmtKey(parts []interface{}) string {
	s := ""
	for _, p := range parts {
		s += sep + toKeyString(p)
	}
	return s
}

const sep = "\x1f"

func toKeyString(v interface{}) string {
	if v == nil {
		return "\x00"
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
