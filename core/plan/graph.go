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

package plan

import "github.com/pkg/errors"

// DependencyGraph is an acyclic multi-rooted DAG of QueryPlanNodeKeys
// (§3). Measure expression trees are finite and never self-referential by
// construction, so cycles cannot arise from AddEdge calls that follow
// measure.Measure.Prerequisites(); AddEdge still checks, and returns an
// error rather than silently wedging an infinite loop, in case a future
// caller wires user-defined measure aliases that refer to each other
// (§9 "Cyclic references").
type DependencyGraph struct {
	nodes map[id]*Node
	order []id // insertion order, used as ExecutionPlan's topo tie-break
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{nodes: make(map[id]*Node)}
}

// AddNode registers key as a node if not already present (tie-break on
// equal keys: merge, no duplicate nodes, §4.3). Returns the existing or
// newly created Node.
func (g *DependencyGraph) AddNode(key QueryPlanNodeKey) *Node {
	kid := keyID(key)
	if n, ok := g.nodes[kid]; ok {
		return n
	}
	n := &Node{Key: key, id: kid}
	g.nodes[kid] = n
	g.order = append(g.order, kid)
	return n
}

// AddEdge records that needed requires needs: needed cannot execute until
// needs has. Both ends are added as nodes if not already present.
func (g *DependencyGraph) AddEdge(needed, needs QueryPlanNodeKey) error {
	neededNode := g.AddNode(needed)
	needsNode := g.AddNode(needs)
	if neededNode.id == needsNode.id {
		return nil // a primitive measure's "prerequisite" is itself; not an edge
	}
	for _, existing := range neededNode.needIDs {
		if existing == needsNode.id {
			return nil
		}
	}
	neededNode.Needs = append(neededNode.Needs, needsNode.Key)
	neededNode.needIDs = append(neededNode.needIDs, needsNode.id)
	return nil
}

// Nodes returns every node in insertion order.
func (g *DependencyGraph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, kid := range g.order {
		nodes[i] = g.nodes[kid]
	}
	return nodes
}

// Node looks up the node for key, if present.
func (g *DependencyGraph) Node(key QueryPlanNodeKey) (*Node, bool) {
	n, ok := g.nodes[keyID(key)]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *DependencyGraph) Len() int { return len(g.order) }

// ErrCycle is returned by NewExecutionPlan if the graph contains a cycle,
// which measure expression trees never produce on their own (§3, §9).
var ErrCycle = errors.New("plan: dependency graph contains a cycle")
