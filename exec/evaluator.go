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

package exec

import (
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
	"github.com/squashql/squashql-go/core/plan"
)

// Evaluator walks a plan.ExecutionPlan's topological order and, for each
// non-primitive node, computes its measure column from already-
// materialized scopes (§4.6). Primitive nodes are skipped: the prefetch
// stage already wrote their column directly into tableByScope.
type Evaluator struct {
	Tables TableByScope
}

// Run evaluates every non-primitive node of plan in topological order.
func (e *Evaluator) Run(ctx *core.Context, execPlan *plan.ExecutionPlan) error {
	return execPlan.Run(func(n *plan.Node) error {
		if err := ctx.Cancelled(); err != nil {
			return err
		}
		if n.Key.Measure.Kind() == measure.Primitive {
			return nil
		}
		tbl, ok := e.Tables.Get(n.Key.Scope)
		if !ok {
			return errors.Errorf("evaluator: no materialized table for scope of measure %s", n.Key.Measure.Alias())
		}
		if tbl.HasColumn(n.Key.Measure.Alias()) {
			return nil // already evaluated via a different node sharing this key
		}
		col, err := n.Key.Measure.Evaluate(newNodeContext(e.Tables, n.Key.Scope, n.Key.Measure))
		if err != nil {
			return errors.Wrapf(err, "evaluate measure %s", n.Key.Measure.Alias())
		}
		tbl.AppendColumn(col)
		return nil
	})
}

// nodeContext implements measure.EvalContext for one node's home scope,
// resolving measure.Current/measure.Shifted against exec's TableByScope
// using the same scope-shift rule the analyzer's PrefetchVisitor used to
// populate it (analyzer.ShiftedPrerequisiteScope), so the two never
// disagree about which concrete scope a symbolic reference means.
type nodeContext struct {
	tables TableByScope
	scope  plan.QueryScope
	shift  *measure.Shift
}

// newNodeContext builds a nodeContext for m evaluated at scope, pulling
// the Shift a Comparison measure needs to resolve measure.Shifted straight
// off m itself (only ComparisonMeasure has one; every other kind never
// asks for the Shifted ref, so shift stays nil for them).
func newNodeContext(tables TableByScope, scope plan.QueryScope, m measure.Measure) *nodeContext {
	nc := &nodeContext{tables: tables, scope: scope}
	if c, ok := m.(*measure.ComparisonMeasure); ok {
		nc.shift = &c.Shift
	}
	return nc
}

func (c *nodeContext) resolve(ref measure.ScopeRef) (*core.Table, error) {
	scope := c.scope
	if ref == measure.Shifted {
		scope = analyzer.ShiftedPrerequisiteScope(c.scope, c.shift)
	}
	tbl, ok := c.tables.Get(scope)
	if !ok {
		return nil, errors.Errorf("no materialized table for scope (tableRef=%s)", scope.TableRef)
	}
	return tbl, nil
}

func (c *nodeContext) Column(ref measure.ScopeRef, alias string) (*core.Column, error) {
	tbl, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	col := tbl.Column(alias)
	if col == nil {
		return nil, core.ErrUnresolvedMeasure.New(alias)
	}
	return col, nil
}

func (c *nodeContext) RowCount(ref measure.ScopeRef) int {
	tbl, err := c.resolve(ref)
	if err != nil {
		return 0
	}
	return tbl.Count()
}

func (c *nodeContext) Table(ref measure.ScopeRef) (*core.Table, error) {
	return c.resolve(ref)
}
