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

// ExecutionPlan orders a DependencyGraph's nodes topologically and invokes
// a callback once per node in that order (§4.4). It is built once per
// query and run twice: once for the prefetch pass, once for the
// evaluation pass (spec §4.4).
type ExecutionPlan struct {
	graph *DependencyGraph
	order []*Node
}

// NewExecutionPlan computes a stable topological order over graph using
// Kahn's algorithm, breaking ties by the order nodes were first inserted
// into the graph so that runs over the same graph are deterministic
// (§4.4, testable property 2).
func NewExecutionPlan(graph *DependencyGraph) (*ExecutionPlan, error) {
	nodes := graph.Nodes()
	indexOf := make(map[id]int, len(nodes))
	for i, n := range nodes {
		indexOf[n.id] = i
	}

	// inDegree counts, for each node, how many other nodes need it (i.e.
	// how many edges point at it as a prerequisite); a node with inDegree
	// 0 has nothing depending on it yet being unresolved and is ready to
	// run once everything it itself needs has run. We instead track
	// remaining unresolved prerequisite counts per node ("need count"),
	// since a node is ready exactly when every one of its own
	// prerequisites has already executed.
	needCount := make(map[id]int, len(nodes))
	dependents := make(map[id][]id) // prereq -> nodes that need it
	for _, n := range nodes {
		needCount[n.id] = len(n.needIDs)
		for _, need := range n.needIDs {
			dependents[need] = append(dependents[need], n.id)
		}
	}

	var ready []id
	for _, n := range nodes {
		if needCount[n.id] == 0 {
			ready = append(ready, n.id)
		}
	}

	var order []*Node
	visited := make(map[id]bool, len(nodes))
	for len(ready) > 0 {
		// Stable tie-break: always pop the ready node that was inserted
		// earliest into the graph.
		bestPos, bestIdx := -1, -1
		for i, rid := range ready {
			if pos := indexOf[rid]; bestPos == -1 || pos < bestPos {
				bestPos, bestIdx = pos, i
			}
		}
		nid := ready[bestIdx]
		ready = append(ready[:bestIdx], ready[bestIdx+1:]...)

		if visited[nid] {
			continue
		}
		visited[nid] = true
		order = append(order, graph.nodes[nid])

		for _, dep := range dependents[nid] {
			needCount[dep]--
			if needCount[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCycle
	}
	return &ExecutionPlan{graph: graph, order: order}, nil
}

// Order returns the plan's topological node order.
func (p *ExecutionPlan) Order() []*Node {
	return p.order
}

// Callback is invoked once per node, in topological order. Returning an
// error aborts the remaining walk (§7 "the executor makes no attempt to
// produce a partial result").
type Callback func(n *Node) error

// Run invokes cb once per node of the plan's topological order, stopping
// at the first error.
func (p *ExecutionPlan) Run(cb Callback) error {
	for _, n := range p.order {
		if err := cb(n); err != nil {
			return err
		}
	}
	return nil
}
