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

// Package backend declares the external QueryEngine contract (§6.1): the
// one collaborator this core never implements generically, since it is
// free to be a SQL database, a columnar store, or anything else that can
// answer a DatabaseQuery. backend/memengine supplies a concrete in-memory
// implementation for tests and demos.
package backend

import (
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
)

// DatabaseQuery is one backend request: a scope plus the primitive
// measures (and always COUNT) the prefetch stage needs materialized at
// that scope (§4.5, §6.1).
type DatabaseQuery struct {
	Scope    plan.QueryScope
	Measures []PrimitiveRequest
}

// PrimitiveRequest names one primitive aggregate the backend must compute,
// in the order the caller wants result columns written.
type PrimitiveRequest struct {
	Alias     string
	Aggregate string // "sum", "avg", "min", "max", "count", "grouping"
	Field     string
	Filter    core.And
}

// Datastore is the schema catalog surface a QueryEngine exposes (§6.1
// "datastore().storesByName()").
type Datastore interface {
	StoresByName() map[string]core.Store
}

// QueryEngine is the external backend collaborator (§1, §6.1). This core
// never generates SQL or touches storage itself; it only calls Execute and
// trusts the result shape contract: dimension columns first (exactly the
// scope's grouping columns), then one column per requested measure in
// request order, with null for ROLLUP/GROUPING-SETS super-aggregates.
type QueryEngine interface {
	Execute(ctx *core.Context, q DatabaseQuery) (*core.Table, error)
	ExecuteRawSQL(ctx *core.Context, sql string) (*core.Table, error)
	Datastore() Datastore
}

// ErrBackend is returned by a QueryEngine implementation to distinguish a
// backend-originated failure (§7 "Backend permanent") from a validation
// failure raised earlier in the pipeline.
var ErrBackend = core.ErrBackendPermanent
