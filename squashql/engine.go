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

// Package squashql is the query entrypoint tying every sub-package
// together (§2 data flow): a QueryDTO goes in, a Resolver binds it, a
// GraphBuilder closes it into a DependencyGraph, a Pipeline prefetches
// and evaluates it, and a postprocess.Apply call shapes the result. It
// plays the role the teacher's root sqle package (engine.go) plays for
// go-mysql-server: a thin Engine wiring the sub-packages' analyzer and
// executor together behind one Execute call.
package squashql

import (
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/analyzer"
	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/cache"
	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
	"github.com/squashql/squashql-go/exec"
	"github.com/squashql/squashql-go/postprocess"
)

// Config configures an Engine, mirroring the teacher's Config struct
// (engine.go) in spirit: a small set of construction-time knobs rather
// than a sprawling options struct.
type Config struct {
	// Cache is the queryCache policy backing this Engine's queries. A nil
	// Cache defaults to cache.DefaultGlobal() (§4.7 "Global (the
	// default)").
	Cache cache.Cache
	// Audit, if set, receives a QueryAudit report for every Execute call
	// that reaches the pipeline run (§4.4's logging ambient concern); a
	// call that fails earlier, in resolution or graph building, is not
	// reported.
	Audit exec.QueryAudit
	// TotalMarker overrides the default "Total" sentinel (§4.8.3). Nil
	// keeps postprocess's default.
	TotalMarker postprocess.TotalMarkerFunc
}

// Engine is the query planning and execution core's entrypoint: one
// instance per backend QueryEngine, safe for concurrent use by
// independent queries (§5 "the executor is called from independent
// threads").
type Engine struct {
	backend  backend.QueryEngine
	cache    cache.Cache
	pipeline runner
	resolver *analyzer.Resolver
	builder  *analyzer.GraphBuilder
	cfg      Config
}

// runner is the narrow surface Engine needs from exec.Pipeline, so an
// exec.AuditingPipeline can be substituted in transparently when Audit is
// configured.
type runner interface {
	Run(ctx *core.Context, graph *plan.DependencyGraph, rootScope plan.QueryScope, group *core.GroupDef) (*core.Table, error)
}

// NewEngine builds an Engine over be, using cfg.Cache (or
// cache.DefaultGlobal() if nil) as the shared query cache and cfg.Audit
// (if set) to report every query's audit trail.
func NewEngine(be backend.QueryEngine, cfg Config) *Engine {
	c := cfg.Cache
	if c == nil {
		c = cache.DefaultGlobal()
	}
	pipeline := exec.NewPipeline(be, c)
	var p runner = pipeline
	if cfg.Audit != nil {
		p = exec.NewAuditingPipeline(pipeline, cfg.Audit)
	}
	return &Engine{
		backend:  be,
		cache:    c,
		pipeline: p,
		resolver: analyzer.NewResolver(catalogOf(be)),
		builder:  analyzer.NewGraphBuilder(),
		cfg:      cfg,
	}
}

// catalogOf adapts a backend.QueryEngine's Datastore to analyzer.Catalog;
// both already share the single StoresByName method, but Resolver only
// depends on the narrower analyzer.Catalog interface so it never has to
// import backend.
func catalogOf(be backend.QueryEngine) analyzer.Catalog {
	return be.Datastore()
}

// Execute resolves, plans, prefetches, evaluates and post-processes dto,
// returning a *core.Table for an ordinary query or a *core.PivotTable for
// a pivot query (exactly one of Result.Table/Result.Pivot is set, §3).
func (e *Engine) Execute(ctx *core.Context, dto *analyzer.QueryDTO) (*postprocess.Result, error) {
	if err := ctx.Cancelled(); err != nil {
		return nil, err
	}

	compiled, err := e.resolver.Resolve(dto)
	if err != nil {
		return nil, errors.Wrap(err, "resolve query")
	}

	if ctx.Cache == core.CacheInvalidate {
		e.cache.Clear(ctx.Principal)
	}

	graph, err := e.builder.Build(compiled)
	if err != nil {
		return nil, errors.Wrap(err, "build dependency graph")
	}

	root, err := e.pipeline.Run(ctx, graph, compiled.RootScope, compiled.GroupColumns)
	if err != nil {
		return nil, errors.Wrap(err, "run pipeline")
	}

	result, err := postprocess.Apply(root, compiled, postprocess.Config{
		TotalMarker: e.cfg.TotalMarker,
		Notifier:    nil,
	})
	if err != nil {
		return nil, errors.Wrap(err, "post-process result")
	}
	return result, nil
}

// CacheStats returns principal's lifetime cache hit/miss/eviction counts
// (§4.7 "stats(principal)").
func (e *Engine) CacheStats(principal string) cache.Stats {
	return e.cache.Stats(principal)
}
