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

package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// defaultGlobalSize/TTL are generous enough for a process-wide shared
// cache; callers needing a smaller bound should build their own LRU
// instead of using Global.
const (
	defaultGlobalSize = 100_000
	defaultGlobalTTL  = 10 * time.Minute
)

// Global is the process-wide default cache policy (§4.7 "Global (the
// default)"): an LRU plus a singleflight.Group so concurrent queries that
// would otherwise issue the same backend fetch collapse into one (§5
// "Single-flight").
type Global struct {
	*LRU
	flight singleflight.Group
}

var (
	globalOnce     sync.Once
	globalInstance *Global
)

// NewGlobal builds a standalone Global cache (tests construct their own
// instance instead of sharing process state).
func NewGlobal() *Global {
	return &Global{LRU: NewLRU(defaultGlobalSize, defaultGlobalTTL)}
}

// DefaultGlobal returns the process-wide singleton, created on first call.
func DefaultGlobal() *Global {
	globalOnce.Do(func() { globalInstance = NewGlobal() })
	return globalInstance
}

// FetchMissing ensures at most one in-flight call to fetch runs at a time
// for the given (scope, principal, measure-set) triple (§5): concurrent
// callers with an identical flightKey share the same fetch's result and
// error instead of each issuing a redundant backend call.
func (g *Global) FetchMissing(key Key, aliases []string, fetch func() (interface{}, error)) (interface{}, error) {
	flightKey := flightKeyFor(key, aliases)
	v, err, _ := g.flight.Do(flightKey, fetch)
	return v, err
}

// flightKeyFor builds a deterministic singleflight key from a cache key
// and a set of measure aliases, independent of the caller's slice order.
func flightKeyFor(key Key, aliases []string) string {
	sorted := append([]string{}, aliases...)
	sort.Strings(sorted)
	return fmt.Sprintf("%d|%s|%v", key.ScopeHash, key.Principal, sorted)
}
