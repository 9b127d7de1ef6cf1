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

// Package analyzer binds a raw query DTO against the schema catalog
// (Resolver, §4.1), declares what a compiled measure needs from the
// backend (PrefetchVisitor, §4.2), and closes that requirement set into a
// DependencyGraph (GraphBuilder, §4.3). It is the only package allowed to
// consult the schema catalog, mirroring the teacher's rule that the
// analyzer is the sole consumer of sql.Catalog.
package analyzer

import (
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
)

// MeasureDTO is the wire shape of one requested measure, recursive over
// Operands so computed/comparison/expression measures can be described
// without a second parser.
type MeasureDTO struct {
	Alias string

	// Kind selects which of the fields below are meaningful.
	Kind measure.Kind

	// Primitive fields.
	Agg    measure.Agg
	Field  string
	Filter core.And

	// Computed fields.
	Op          measure.Op
	Left, Right *MeasureDTO

	// Comparison fields.
	Base        *MeasureDTO
	ShiftField  string
	ShiftOffset int

	// Vector fields.
	Wrapped     *MeasureDTO
	VectorField string

	// Constant fields.
	Value interface{}
	Type  core.Type

	// Expression fields: resolved against a registered function by Name.
	Name     string
	Operands []*MeasureDTO
}

// OrderSpec sorts a dimension column; Descending reverses the natural
// comparator, and TotalsLast controls whether the total marker (§4.8)
// sorts after or before ordinary values for this column (default last).
type OrderSpec struct {
	Field      string
	Descending bool
	TotalsLast bool
}

// PivotDTO requests the query's result be reshaped into a PivotTable
// (§3, §4.8, §6.3).
type PivotDTO struct {
	Rows         []string
	Columns      []string
	Values       []string
	HiddenTotals bool
}

// QueryDTO is the raw, unresolved shape of a client query (§6.3).
type QueryDTO struct {
	TableRef      string
	Columns       []string
	Measures      []*MeasureDTO
	Filters       core.And
	RollupColumns []string
	GroupingSets  [][]string
	// GroupColumns requests dynamic GROUP reshaping over a derived
	// dimension (§4.8.1, §6.3); at most one is supported per query.
	GroupColumns *core.GroupDef
	Limit        int
	CacheMode    core.CacheMode
	Pivot        *PivotDTO
	OrderBy      []OrderSpec
}
