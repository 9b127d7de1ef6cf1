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

// Package loader implements the data loader contract of §6.2: an external
// collaborator by spec, given a concrete reference implementation here so
// the eventual-consistency retry loop has a home distinct from the
// read-path retry the spec explicitly forbids folding it into.
package loader

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/core"
)

// Store is the minimal surface a loader needs from a backend to create
// and populate a table.
type Store interface {
	CreateTable(name string, schema core.Schema)
	InsertRows(name string, rows [][]interface{}) error
}

// maxAttempts and the backoff schedule implement §6.2's exact retry
// contract: 1, 2, 4, 8, 16 seconds, five attempts total.
const maxAttempts = 5

// Loader drives a Store through the idempotent create + retrying insert
// flow of §6.2.
type Loader struct {
	Store Store
}

// New builds a Loader over store.
func New(store Store) *Loader {
	return &Loader{Store: store}
}

// DropAndCreateInMemoryTable is idempotent: it delegates to
// Store.CreateTable, which returns no error and replaces any existing
// table of the same name (§6.2). Implementations of Store backed by a real
// database should make CreateTable itself drop-then-create so this method
// never needs to distinguish the two.
func (l *Loader) DropAndCreateInMemoryTable(name string, schema core.Schema) {
	l.Store.CreateTable(name, schema)
}

// Load inserts rows into store, retrying backend-transient errors with
// exponential backoff (1, 2, 4, 8, 16 seconds), failing with the last
// backend error after maxAttempts (§6.2).
func (l *Loader) Load(ctx context.Context, name string, rows [][]interface{}) error {
	attempt := 0
	policy := backoff.WithContext(fixedSchedule(), ctx)
	return backoff.Retry(func() error {
		attempt++
		err := l.Store.InsertRows(name, rows)
		if err == nil {
			return nil
		}
		if attempt >= maxAttempts {
			return backoff.Permanent(errors.Wrap(err, "load: exhausted retries"))
		}
		return err
	}, policy)
}

// fixedSchedule returns the 1,2,4,8,16-second backoff sequence of §6.2,
// capped at maxAttempts tries by Load's own attempt counter rather than
// backoff's MaxElapsedTime (which bounds wall time, not attempt count).
func fixedSchedule() backoff.BackOff {
	delays := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
	return &fixedBackOff{delays: delays}
}

type fixedBackOff struct {
	delays []time.Duration
	next   int
}

func (b *fixedBackOff) Reset() { b.next = 0 }

func (b *fixedBackOff) NextBackOff() time.Duration {
	if b.next >= len(b.delays) {
		return backoff.Stop
	}
	d := b.delays[b.next]
	b.next++
	return d
}

// ErrUnsupported is returned by LoadCSV: CSV ingestion is optional per
// §6.2 and this reference loader declares it unsupported.
var ErrUnsupported = errors.New("loader: CSV loading is not supported")

// LoadCSV is declared unsupported (§6.2 "optional; implementations may
// declare unsupported").
func (l *Loader) LoadCSV(string, string) error {
	return ErrUnsupported
}

// SerializeValue renders a typed field value the way the backend wire
// format expects it for insertion: temporal values as ISO-8601 strings,
// opaque values as JSON strings, everything else passed through (§6.2).
func SerializeValue(v interface{}, t core.Type) (interface{}, error) {
	switch t {
	case core.Temporal:
		if tm, ok := v.(time.Time); ok {
			return tm.Format("2006-01-02"), nil
		}
		return v, nil
	case core.DateTime:
		if tm, ok := v.(time.Time); ok {
			return tm.Format(time.RFC3339), nil
		}
		return v, nil
	case core.Opaque:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "serialize opaque value")
		}
		return string(b), nil
	default:
		return v, nil
	}
}

// isAlreadyExists reports whether err looks like a "table already exists"
// conflict, the one error DropAndCreateInMemoryTable tolerates instead of
// surfacing (§6.2).
func isAlreadyExists(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "already exists")
}
