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
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/cache"
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/measure"
	"github.com/squashql/squashql-go/core/plan"
)

// countAlias is the always-fetched row-count measure every backend call
// requests in addition to the scope's own primitive measures (§4.5 step
// 3: "plus COUNT").
const countAlias = "__count__"

// singleFlighter is implemented by cache.Global; PrefetchStage uses it
// when available to collapse duplicate concurrent fetches for the same
// (scope, principal, measure-set) (§5).
type singleFlighter interface {
	FetchMissing(key cache.Key, aliases []string, fetch func() (interface{}, error)) (interface{}, error)
}

// PrefetchStage implements §4.5: for each scope in the plan, partitions
// required measures into cacheable-hit/cacheable-miss/non-cacheable,
// issues at most one backend call per scope, merges cached and fetched
// columns, and writes cacheable-miss columns back to the cache.
type PrefetchStage struct {
	Backend backend.QueryEngine
	Cache   cache.Cache
}

// scopeGroup is every primitive measure node sharing one scope.
type scopeGroup struct {
	scope    plan.QueryScope
	measures []*measure.PrimitiveMeasure
}

func groupByScope(g *plan.DependencyGraph) []*scopeGroup {
	order := make([]uint64, 0)
	groups := make(map[uint64]*scopeGroup)
	for _, n := range g.Nodes() {
		h := n.Key.Scope.Hash()
		grp, ok := groups[h]
		if !ok {
			grp = &scopeGroup{scope: n.Key.Scope}
			groups[h] = grp
			order = append(order, h)
		}
		if p, ok := n.Key.Measure.(*measure.PrimitiveMeasure); ok {
			grp.measures = append(grp.measures, p)
		}
	}
	out := make([]*scopeGroup, len(order))
	for i, h := range order {
		out[i] = groups[h]
	}
	return out
}

// Run fetches every scope in graph, returning the resulting TableByScope.
func (p *PrefetchStage) Run(ctx *core.Context, graph *plan.DependencyGraph) (TableByScope, error) {
	if ctx.Cache == core.CacheInvalidate {
		p.Cache.Clear(ctx.Principal)
	}

	tables := make(TableByScope)
	for _, g := range groupByScope(graph) {
		if err := ctx.Cancelled(); err != nil {
			return nil, err
		}
		tbl, err := p.fetchScope(ctx, g)
		if err != nil {
			return nil, errors.Wrapf(err, "prefetch scope %s", g.scope.TableRef)
		}
		tables.Set(g.scope, tbl)
	}
	return tables, nil
}

func (p *PrefetchStage) fetchScope(ctx *core.Context, g *scopeGroup) (*core.Table, error) {
	key := cache.KeyFor(g.scope, ctx.Principal)
	useCache := ctx.Cache != core.CacheNotUse

	var hit, miss, nonCacheable []*measure.PrimitiveMeasure
	for _, m := range g.measures {
		switch {
		case !measure.Cacheable(m):
			nonCacheable = append(nonCacheable, m)
		case useCache && p.Cache.Contains(key, m.Alias()):
			hit = append(hit, m)
		default:
			miss = append(miss, m)
		}
	}

	needFetch := append(append([]*measure.PrimitiveMeasure{}, miss...), nonCacheable...)

	var fetched *core.Table
	if len(needFetch) > 0 {
		span, spanCtx := opentracing.StartSpanFromContext(ctx.Context, "backend.Execute")
		defer span.Finish()
		backendCtx := *ctx
		backendCtx.Context = spanCtx

		query := buildDatabaseQuery(g.scope, needFetch)
		result, err := p.fetchWithSingleFlight(&backendCtx, key, query)
		if err != nil {
			return nil, err
		}
		fetched = result
	}

	var groupingColumns []*core.Column
	if fetched != nil {
		for _, c := range fetched.Columns() {
			if isGroupingColumn(c.Field.Name, g.scope.Columns) {
				groupingColumns = append(groupingColumns, c)
			}
		}
	}
	result := p.Cache.CreateRawResult(key, groupingColumns)

	hitAliases := aliasesOf(hit)
	p.Cache.ContributeToResult(result, key, hitAliases)

	if fetched != nil {
		for _, m := range needFetch {
			if col := fetched.Column(m.Alias()); col != nil {
				result.AppendColumn(&core.Column{Field: col.Field, Values: col.Values})
			}
		}
		// CacheNotUse bypasses the cache entirely (core.CacheMode doc): a
		// query that opts out must not leave columns behind for the next
		// query to pick up.
		if useCache {
			p.Cache.ContributeToCache(fetched, key, aliasesOf(miss))
		}
	}

	return result, nil
}

func (p *PrefetchStage) fetchWithSingleFlight(ctx *core.Context, key cache.Key, query backend.DatabaseQuery) (*core.Table, error) {
	aliases := make([]string, len(query.Measures))
	for i, m := range query.Measures {
		aliases[i] = m.Alias
	}
	fetch := func() (interface{}, error) { return p.Backend.Execute(ctx, query) }
	if sf, ok := p.Cache.(singleFlighter); ok {
		v, err := sf.FetchMissing(key, aliases, fetch)
		if err != nil {
			return nil, err
		}
		return v.(*core.Table), nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	return v.(*core.Table), nil
}

func buildDatabaseQuery(scope plan.QueryScope, measures []*measure.PrimitiveMeasure) backend.DatabaseQuery {
	requests := make([]backend.PrimitiveRequest, 0, len(measures)+1)
	haveCount := false
	for _, m := range measures {
		requests = append(requests, backend.PrimitiveRequest{
			Alias:     m.Alias(),
			Aggregate: m.Function.String(),
			Field:     m.Field,
			Filter:    m.Filter,
		})
		if m.Function == measure.Count && m.Field == "" {
			haveCount = true
		}
	}
	if !haveCount {
		requests = append(requests, backend.PrimitiveRequest{Alias: countAlias, Aggregate: "count"})
	}
	return backend.DatabaseQuery{Scope: scope, Measures: requests}
}

func aliasesOf(measures []*measure.PrimitiveMeasure) []string {
	aliases := make([]string, len(measures))
	for i, m := range measures {
		aliases[i] = m.Alias()
	}
	return aliases
}

func isGroupingColumn(name string, columns []string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

