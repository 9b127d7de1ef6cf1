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

package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CacheMode is the queryCache DTO option (§6.3).
type CacheMode int

const (
	// CacheUse fetches from cache when possible (the default).
	CacheUse CacheMode = iota
	// CacheNotUse bypasses the cache entirely for this query; results it
	// produces are not written back either.
	CacheNotUse
	// CacheInvalidate clears the principal's cache entries before the
	// query proceeds.
	CacheInvalidate
)

// Context wraps a context.Context with the identity and logging state
// threaded through a single query's planning and execution, mirroring how
// the teacher's sql.Context embeds a context.Context rather than
// reimplementing cancellation/deadlines.
type Context struct {
	context.Context

	// Principal partitions the cache (§3 CacheKey, §6.3). Empty means the
	// shared/anonymous cache partition.
	Principal string
	// QueryID uniquely identifies this query for logging/tracing.
	QueryID string
	// Cache is the queryCache DTO option for this query.
	Cache CacheMode
	// Log receives structured execution log lines.
	Log logrus.FieldLogger
}

// NewContext builds a query Context. An empty principal is treated as the
// anonymous/shared cache partition.
func NewContext(parent context.Context, principal string, mode CacheMode) *Context {
	id := uuid.NewString()
	return &Context{
		Context:   parent,
		Principal: principal,
		QueryID:   id,
		Cache:     mode,
		Log:       logrus.WithField("query_id", id),
	}
}

// Cancelled reports whether the underlying context has been cancelled or
// timed out, translating ctx.Err() into the typed error kinds of §7.
func (c *Context) Cancelled() error {
	switch c.Err() {
	case nil:
		return nil
	case context.Canceled:
		return ErrCancelled.New()
	case context.DeadlineExceeded:
		return ErrTimeout.New()
	default:
		return c.Err()
	}
}
