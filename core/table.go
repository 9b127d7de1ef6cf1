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

package core

// Column is a single named vector of values, all sharing Field.Type's Go
// representation (int64, float64, bool, time.Time, string, []int64,
// []string, or json.RawMessage for Opaque).
type Column struct {
	Field  Field
	Values []interface{}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Values) }

// Table is the columnar result shape every component passes around:
// Resolver output schemas, backend results, cached entries, and the final
// user-facing result all satisfy this shape (§3).
type Table struct {
	columns []*Column
}

// NewTable builds a Table from already-populated columns. All columns must
// have equal length; callers that cannot guarantee this should use
// NewEmptyTable and AppendColumn instead.
func NewTable(columns ...*Column) *Table {
	return &Table{columns: columns}
}

// NewEmptyTable builds a zero-column, zero-row table ready for
// AppendColumn calls.
func NewEmptyTable() *Table {
	return &Table{}
}

// Count returns the row count, i.e. the length of the first column, or 0
// for a columnless table.
func (t *Table) Count() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Columns returns the table's columns in declaration order. The slice must
// not be mutated by callers; use AppendColumn/RemoveColumn instead.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column returns the column for the given field name, or nil if absent.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.Field.Name == name {
			return c
		}
	}
	return nil
}

// HasColumn reports whether a column with the given name is present.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// AppendColumn adds a new column to the table. The caller is responsible
// for ensuring col.Len() matches t.Count() once the table has any rows.
func (t *Table) AppendColumn(col *Column) {
	t.columns = append(t.columns, col)
}

// RemoveColumn drops the column with the given name, if present.
func (t *Table) RemoveColumn(name string) {
	for i, c := range t.columns {
		if c.Field.Name == name {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			return
		}
	}
}

// Truncate keeps only the first n rows of every column.
func (t *Table) Truncate(n int) {
	if n < 0 || n >= t.Count() {
		return
	}
	for _, c := range t.columns {
		c.Values = c.Values[:n]
	}
}

// Clone returns a deep-enough copy of the table: new Column slices, shared
// value backing (values themselves are treated as immutable once written).
func (t *Table) Clone() *Table {
	cols := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		vals := make([]interface{}, len(c.Values))
		copy(vals, c.Values)
		cols[i] = &Column{Field: c.Field, Values: vals}
	}
	return &Table{columns: cols}
}

// ColumnarTable additionally tracks which of its columns are grouping
// dimensions versus measures, the distinction the post-processor needs to
// order measures after dimensions (§4.8.2) and to know which columns may
// carry a total marker (§4.8.3).
type ColumnarTable struct {
	*Table
	GroupingFields []string
	MeasureAliases []string
}

// NewColumnarTable wraps a Table with its grouping/measure column split.
func NewColumnarTable(t *Table, groupingFields, measureAliases []string) *ColumnarTable {
	return &ColumnarTable{Table: t, GroupingFields: groupingFields, MeasureAliases: measureAliases}
}

// IsGrouping reports whether the named column is a grouping dimension.
func (c *ColumnarTable) IsGrouping(name string) bool {
	for _, g := range c.GroupingFields {
		if g == name {
			return true
		}
	}
	return false
}
