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
	"time"

	"github.com/sirupsen/logrus"

	"github.com/squashql/squashql-go/core"
	"github.com/squashql/squashql-go/core/plan"
)

// QueryAudit is called once per Pipeline.Run to log the audit trail of a
// query's execution.
type QueryAudit interface {
	// Query logs one query execution: its principal, duration and outcome.
	Query(ctx *core.Context, scope plan.QueryScope, d time.Duration, err error)
}

const auditLogMessage = "query audit trail"

// LogrusAudit logs audit trails to a logrus.Logger.
type LogrusAudit struct {
	log *logrus.Entry
}

// NewLogrusAudit builds a QueryAudit that logs to l under the "audit"
// system field.
func NewLogrusAudit(l *logrus.Logger) *LogrusAudit {
	return &LogrusAudit{log: l.WithField("system", "audit")}
}

// Query implements QueryAudit.
func (a *LogrusAudit) Query(ctx *core.Context, scope plan.QueryScope, d time.Duration, err error) {
	fields := logrus.Fields{
		"action":    "query",
		"principal": ctx.Principal,
		"table":     scope.TableRef,
		"duration":  d,
		"success":   true,
	}
	if err != nil {
		fields["success"] = false
		fields["err"] = err
	}
	a.log.WithFields(fields).Info(auditLogMessage)
}

// AuditingPipeline wraps a Pipeline so every Run is also reported to a
// QueryAudit.
type AuditingPipeline struct {
	*Pipeline
	Audit QueryAudit
}

// NewAuditingPipeline wraps p so every Run also reports to audit.
func NewAuditingPipeline(p *Pipeline, audit QueryAudit) *AuditingPipeline {
	return &AuditingPipeline{Pipeline: p, Audit: audit}
}

// Run runs the wrapped Pipeline and reports the outcome to Audit.
func (a *AuditingPipeline) Run(ctx *core.Context, graph *plan.DependencyGraph, rootScope plan.QueryScope, group *core.GroupDef) (*core.Table, error) {
	start := time.Now()
	tbl, err := a.Pipeline.Run(ctx, graph, rootScope, group)
	a.Audit.Query(ctx, rootScope, time.Since(start), err)
	return tbl, err
}
