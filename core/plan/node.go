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

import "github.com/squashql/squashql-go/core/measure"

// QueryPlanNodeKey identifies one unit of work: a measure evaluated within
// a scope (§3). Two keys with the same (Scope, Measure.Alias()) are
// fungible and deduplicate to the same graph node.
type QueryPlanNodeKey struct {
	Scope   QueryScope
	Measure measure.Measure
}

// id is the comparable map-key form of a QueryPlanNodeKey: a scope's
// structural hash plus the measure's alias. A measure interface value
// holding a pointer isn't itself a meaningful dedup key (two distinct
// *PrimitiveMeasure values with the same alias at the same scope must
// collapse to one node), so dedup always goes through id, never through
// the Measure pointer identity.
type id struct {
	scopeHash uint64
	alias     string
}

func keyID(k QueryPlanNodeKey) id {
	return id{scopeHash: k.Scope.Hash(), alias: k.Measure.Alias()}
}

// Node is one vertex of a DependencyGraph: a key plus the set of other
// nodes it depends on (its prerequisites).
type Node struct {
	Key     QueryPlanNodeKey
	Needs   []QueryPlanNodeKey
	id      id
	needIDs []id
}
