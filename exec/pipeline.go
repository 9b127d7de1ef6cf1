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

	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/cache"
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
	"github.com/squashql/squashql-go/postprocess"
)

// Pipeline runs a DependencyGraph's two passes (§4.4): prefetch every
// scope's primitive measures, then evaluate every non-primitive measure
// over the resulting tables, in topological order.
type Pipeline struct {
	Prefetch *PrefetchStage
}

// NewPipeline builds a Pipeline over the given backend and cache.
func NewPipeline(be backend.QueryEngine, c cache.Cache) *Pipeline {
	return &Pipeline{Prefetch: &PrefetchStage{Backend: be, Cache: c}}
}

// Run executes graph's prefetch pass followed by its evaluation pass and
// returns the root scope's fully materialized table. When group is
// non-nil, every scope's table is reshaped by postprocess.Reshape (§4.8
// item 1) after prefetch but before evaluation, so Computed/Comparison
// measures see the already-expanded GROUP rows just like any other
// grouping column.
func (p *Pipeline) Run(ctx *core.Context, graph *plan.DependencyGraph, rootScope plan.QueryScope, group *core.GroupDef) (*core.Table, error) {
	execPlan, err := plan.NewExecutionPlan(graph)
	if err != nil {
		return nil, errors.Wrap(err, "build execution plan")
	}

	tables, err := p.Prefetch.Run(ctx, graph)
	if err != nil {
		return nil, errors.Wrap(err, "prefetch pass")
	}

	if group != nil {
		reshapeScopes(tables, graph, *group)
	}

	evaluator := &Evaluator{Tables: tables}
	if err := evaluator.Run(ctx, execPlan); err != nil {
		return nil, errors.Wrap(err, "evaluation pass")
	}

	root, ok := tables.Get(rootScope)
	if !ok {
		return nil, errors.New("pipeline: root scope never materialized")
	}
	return root, nil
}

// reshapeScopes applies postprocess.Reshape to every distinct scope
// materialized in tables, in place, so the evaluation pass that follows
// sees the GROUP-expanded rows everywhere a measure might read from.
func reshapeScopes(tables TableByScope, graph *plan.DependencyGraph, group core.GroupDef) {
	seen := make(map[uint64]bool)
	for _, n := range graph.Nodes() {
		h := n.Key.Scope.Hash()
		if seen[h] {
			continue
		}
		seen[h] = true
		if tbl, ok := tables.Get(n.Key.Scope); ok {
			tables.Set(n.Key.Scope, postprocess.Reshape(tbl, group))
		}
	}
}
