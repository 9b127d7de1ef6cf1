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

// Package memengine is a reference in-memory columnar backend.QueryEngine
// (§6.1), grounded on the teacher's memory package's role as the default
// sql.Database implementation exercised throughout the engine's own test
// suite. It stores each table as a set of parallel columns and answers
// DatabaseQuery by filtering, grouping (including ROLLUP/GROUPING SETS
// super-aggregate rows), and aggregating in memory.
package memengine

import (
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/core"
)

// Engine is a process-local, mutex-guarded collection of named tables.
type Engine struct {
	mu     sync.RWMutex
	tables map[string]*table
}

type table struct {
	schema core.Schema
	data   *core.Table
}

// New builds an empty Engine.
func New() *Engine {
	return &Engine{tables: make(map[string]*table)}
}

// CreateTable registers name with schema and no rows, replacing any
// existing table of the same name (loader's dropAndCreateInMemoryTable
// idempotency, §6.2, lives in the loader package; this method is the raw
// primitive it's built on).
func (e *Engine) CreateTable(name string, schema core.Schema) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cols := make([]*core.Column, len(schema))
	for i, f := range schema {
		cols[i] = &core.Column{Field: f}
	}
	e.tables[name] = &table{schema: schema, data: core.NewTable(cols...)}
}

// InsertRows appends rows (one slice of field-ordered values per row) to
// name's table.
func (e *Engine) InsertRows(name string, rows [][]interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tables[name]
	if !ok {
		return core.ErrUnknownField.New(name)
	}
	cols := t.data.Columns()
	for _, row := range rows {
		for i, v := range row {
			if i < len(cols) {
				cols[i].Values = append(cols[i].Values, v)
			}
		}
	}
	return nil
}

// Datastore returns the schema catalog view of e.
func (e *Engine) Datastore() backend.Datastore { return datastore{e} }

type datastore struct{ e *Engine }

func (d datastore) StoresByName() map[string]core.Store {
	d.e.mu.RLock()
	defer d.e.mu.RUnlock()
	out := make(map[string]core.Store, len(d.e.tables))
	for name, t := range d.e.tables {
		out[name] = core.Store{Name: name, Schema: t.schema}
	}
	return out
}

// Execute implements backend.QueryEngine (§6.1): filters q.Scope's table,
// resolves the grouping sets implied by RollupColumns/GroupingSets,
// aggregates each requested measure per group, and returns dimension
// columns followed by measure columns in request order.
func (e *Engine) Execute(ctx *core.Context, q backend.DatabaseQuery) (*core.Table, error) {
	if err := ctx.Cancelled(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	t, ok := e.tables[q.Scope.TableRef]
	e.mu.RUnlock()
	if !ok {
		return nil, core.ErrUnknownField.New(q.Scope.TableRef)
	}

	rows := filterRows(t.data, q.Scope.Filters)
	if q.Scope.Shift != nil {
		rows = filterRows(t.data, dropFilterOn(q.Scope.Filters, q.Scope.Shift.Field))
	}

	sets := groupingSets(q.Scope.Columns, q.Scope.RollupColumns, q.Scope.GroupingSets)

	var outRows []aggregatedRow
	for _, gs := range sets {
		outRows = append(outRows, aggregateGroup(t.data, rows, q.Scope.Columns, gs, q.Measures)...)
	}

	sort.SliceStable(outRows, func(i, j int) bool { return outRows[i].sortKey < outRows[j].sortKey })

	limit := q.Scope.Limit
	if limit > 0 && len(outRows) > limit {
		outRows = outRows[:limit]
	}

	return buildResultTable(t.schema, q.Scope.Columns, q.Measures, outRows), nil
}

// ExecuteRawSQL is unsupported: memengine never parses SQL text, there is
// no SQL surface in this core (§1 Non-goals).
func (e *Engine) ExecuteRawSQL(_ *core.Context, _ string) (*core.Table, error) {
	return nil, backend.ErrBackend.New("memengine does not support raw SQL execution")
}

// dropFilterOn returns filters with every predicate on field removed.
func dropFilterOn(filters core.And, field string) core.And {
	out := make(core.And, 0, len(filters))
	for _, p := range filters {
		if p.Field != field {
			out = append(out, p)
		}
	}
	return out
}

func fieldType(schema core.Schema, name string) core.Type {
	if f, ok := schema.FieldByName(name); ok {
		return f.Type
	}
	return core.String
}

func toKeyString(v interface{}) string {
	if v == nil {
		return "\x00"
	}
	return cast.ToString(v)
}

func keyOf(t *core.Table, row int, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		col := t.Column(f)
		if col == nil || row >= col.Len() {
			parts[i] = "\x00"
			continue
		}
		parts[i] = toKeyString(col.Values[row])
	}
	return strings.Join(parts, "\x1f")
}
