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
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/squashql/squashql-go/config"
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
	"github.com/squashql/squashql-go/core/plan"
)

// Catalog is the schema catalog the Resolver binds a QueryDTO against
// (§4.1, §6.1's QueryEngine.Datastore().StoresByName()).
type Catalog interface {
	StoresByName() map[string]core.Store
}

// CompiledQuery is the Resolver's output: typed columns, the compiled
// measure map keyed by alias, and the root QueryScope (§4.1).
type CompiledQuery struct {
	RootScope     plan.QueryScope
	Columns       []string
	Measures      map[string]measure.Measure
	RequestedKeys []plan.QueryPlanNodeKey
	Pivot         *PivotDTO
	OrderBy       []OrderSpec
	Limit         int
	GroupColumns  *core.GroupDef
}

// Resolver binds a QueryDTO against a schema Catalog, producing a
// CompiledQuery. It is the only component allowed to consult the catalog
// (§4.1).
type Resolver struct {
	Catalog Catalog
}

// NewResolver builds a Resolver over the given catalog.
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{Catalog: catalog}
}

// Resolve binds dto against r.Catalog, failing with ErrUnknownField,
// ErrTypeMismatch, or ErrUnresolvedMeasure when dto references identifiers
// absent from the catalog (§4.1).
func (r *Resolver) Resolve(dto *QueryDTO) (*CompiledQuery, error) {
	store, ok := r.Catalog.StoresByName()[dto.TableRef]
	if !ok {
		return nil, core.ErrUnknownField.New(dto.TableRef)
	}

	for _, col := range dto.Columns {
		if _, ok := store.Schema.FieldByName(col); !ok {
			return nil, core.ErrUnknownField.New(col)
		}
	}
	if dto.Pivot != nil && len(dto.RollupColumns) > 0 {
		return nil, core.ErrIllegalArgument.New("rollupColumns must be empty for a pivot query")
	}

	limit := dto.Limit
	if limit < 0 {
		limit = config.DefaultQueryLimit()
	}

	scope := plan.QueryScope{
		TableRef:      dto.TableRef,
		Columns:       append([]string{}, dto.Columns...),
		RollupColumns: append([]string{}, dto.RollupColumns...),
		GroupingSets:  dto.GroupingSets,
		Filters:       dto.Filters,
		Limit:         limit,
	}
	// A GROUP column-set's source dimension must be fetched even if the
	// user never listed it among their requested columns, since the
	// reshape (postprocess.Reshape, §4.8.1) tests bucket membership
	// against it before evaluation ever sees the synthetic Field column.
	if dto.GroupColumns != nil && !containsColumn(scope.Columns, dto.GroupColumns.Source) {
		scope.Columns = append(scope.Columns, dto.GroupColumns.Source)
	}

	compiled := make([]measure.Measure, 0, len(dto.Measures))
	measures := make(map[string]measure.Measure, len(dto.Measures))
	for _, mdto := range dto.Measures {
		m, err := r.compile(store, mdto)
		if err != nil {
			return nil, err
		}
		if _, dup := measures[m.Alias()]; dup {
			return nil, core.ErrDuplicateAlias.New(m.Alias())
		}
		measures[m.Alias()] = m
		compiled = append(compiled, m)
		// A vector measure's Evaluate re-groups by every column of the
		// current scope's table other than VectorField and its wrapped
		// alias, so the backend must be asked to fetch VectorField as a
		// grouping column even though the user never requested it (§4.2).
		if v, ok := m.(*measure.VectorMeasure); ok && !containsColumn(scope.Columns, v.VectorField) {
			scope.Columns = append(scope.Columns, v.VectorField)
		}
		// A comparison measure's reference-position function matches rows
		// of the current and shifted scopes on every grouping column
		// including the shifted one, so that column must be fetched even
		// when the user never listed it among their requested columns.
		if c, ok := m.(*measure.ComparisonMeasure); ok && !containsColumn(scope.Columns, c.Shift.Field) {
			scope.Columns = append(scope.Columns, c.Shift.Field)
		}
	}

	var requested []plan.QueryPlanNodeKey
	for _, m := range compiled {
		requested = append(requested, plan.QueryPlanNodeKey{Scope: scope, Measure: m})
	}

	return &CompiledQuery{
		RootScope:     scope,
		Columns:       dto.Columns,
		Measures:      measures,
		RequestedKeys: requested,
		Pivot:         dto.Pivot,
		OrderBy:       dto.OrderBy,
		Limit:         limit,
		GroupColumns:  dto.GroupColumns,
	}, nil
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func (r *Resolver) compile(store core.Store, dto *MeasureDTO) (measure.Measure, error) {
	if dto == nil {
		return nil, core.ErrUnresolvedMeasure.New("<nil>")
	}
	switch dto.Kind {
	case measure.Primitive:
		if dto.Agg != measure.Grouping {
			if _, ok := store.Schema.FieldByName(dto.Field); !ok {
				return nil, core.ErrUnknownField.New(dto.Field)
			}
		}
		return measure.NewPrimitive(dto.Alias, dto.Agg, dto.Field, dto.Filter), nil
	case measure.Computed:
		left, err := r.compile(store, dto.Left)
		if err != nil {
			return nil, errors.Wrapf(err, "computed measure %s", dto.Alias)
		}
		right, err := r.compile(store, dto.Right)
		if err != nil {
			return nil, errors.Wrapf(err, "computed measure %s", dto.Alias)
		}
		return measure.NewComputed(dto.Alias, dto.Op, left, right), nil
	case measure.Comparison:
		base, err := r.compile(store, dto.Base)
		if err != nil {
			return nil, errors.Wrapf(err, "comparison measure %s", dto.Alias)
		}
		return measure.NewComparison(dto.Alias, base, measure.Shift{Field: dto.ShiftField, Offset: dto.ShiftOffset}, previousPositionRef(dto.ShiftField, dto.ShiftOffset)), nil
	case measure.Vector:
		wrapped, err := r.compile(store, dto.Wrapped)
		if err != nil {
			return nil, errors.Wrapf(err, "vector measure %s", dto.Alias)
		}
		if _, ok := store.Schema.FieldByName(dto.VectorField); !ok {
			return nil, core.ErrUnknownField.New(dto.VectorField)
		}
		return measure.NewVector(dto.Alias, wrapped, dto.VectorField), nil
	case measure.Constant:
		typedValue, err := coerce(dto.Value, dto.Type)
		if err != nil {
			return nil, core.ErrTypeMismatch.Wrap(err, dto.Alias, dto.Type)
		}
		return measure.NewConstant(dto.Alias, typedValue, dto.Type), nil
	case measure.Expression:
		fn, ok := lookupFunc(dto.Name)
		if !ok {
			return nil, core.ErrUnresolvedMeasure.New(dto.Name)
		}
		operands := make([]measure.Measure, 0, len(dto.Operands))
		for _, op := range dto.Operands {
			m, err := r.compile(store, op)
			if err != nil {
				return nil, errors.Wrapf(err, "expression measure %s", dto.Alias)
			}
			operands = append(operands, m)
		}
		return measure.NewExpression(dto.Alias, dto.Name, fn, operands...), nil
	default:
		return nil, core.ErrUnresolvedMeasure.New(dto.Alias)
	}
}

// coerce converts a raw DTO scalar (as decoded from JSON: float64, string,
// bool, ...) into the Go representation matching t, using spf13/cast so
// the resolver doesn't hand-roll type-switch coercion for every numeric
// width (§4.1).
func coerce(v interface{}, t core.Type) (interface{}, error) {
	switch t {
	case core.Integer:
		return cast.ToInt64E(v)
	case core.Floating:
		return cast.ToFloat64E(v)
	case core.Boolean:
		return cast.ToBoolE(v)
	case core.Temporal, core.DateTime:
		return cast.ToTimeE(v)
	case core.String:
		return cast.ToStringE(v)
	default:
		return v, nil
	}
}
