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
	"github.com/squashql/squashql-go/core/measure"
	"github.com/squashql/squashql-go/core/plan"
)

// GraphBuilder closes a CompiledQuery's requested measures into a full
// DependencyGraph (§4.3): starting from the user-requested measures at the
// root scope plus the always-required COUNT measure and any grouping
// measures implied by rollups/grouping-sets, it repeatedly applies the
// PrefetchVisitor, adding new nodes and edges, until no node yields a
// prerequisite the graph doesn't already contain.
type GraphBuilder struct {
	visitor PrefetchVisitor
}

// NewGraphBuilder returns a GraphBuilder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{}
}

// Build closes q's requested keys into a DependencyGraph.
func (b *GraphBuilder) Build(q *CompiledQuery) (*plan.DependencyGraph, error) {
	g := plan.NewDependencyGraph()

	roots := append([]plan.QueryPlanNodeKey{}, q.RequestedKeys...)
	roots = append(roots, plan.QueryPlanNodeKey{
		Scope:   q.RootScope,
		Measure: measure.NewPrimitive("count", measure.Count, "", nil),
	})
	for _, field := range rollupFields(q.RootScope) {
		roots = append(roots, plan.QueryPlanNodeKey{
			Scope:   q.RootScope,
			Measure: measure.NewGrouping(field),
		})
	}

	for _, root := range roots {
		g.AddNode(root)
	}

	// Fixpoint: keep visiting nodes for prerequisites until a full pass
	// over the graph adds nothing new. The graph is finite because
	// measure expression trees are finite by construction (§3), so this
	// always terminates.
	for {
		grew := false
		for _, n := range g.Nodes() {
			for _, reqKey := range b.visitor.Visit(n.Key.Scope, n.Key.Measure) {
				if _, ok := g.Node(reqKey); !ok {
					grew = true
				}
				if err := g.AddEdge(n.Key, reqKey); err != nil {
					return nil, err
				}
			}
		}
		if !grew {
			break
		}
	}

	return g, nil
}

// rollupFields returns every distinct field a ROLLUP or GROUPING SETS
// clause in scope needs a grouping-indicator measure for (§4.3).
func rollupFields(scope plan.QueryScope) []string {
	seen := make(map[string]bool)
	var fields []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	for _, f := range scope.RollupColumns {
		add(f)
	}
	for _, set := range scope.GroupingSets {
		for _, f := range set {
			add(f)
		}
	}
	return fields
}
