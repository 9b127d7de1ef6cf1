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
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/squashql/squashql-go/core"
)

// entry is one CacheKey's stored state: the grouping columns the first
// fetch established (stable for the key's lifetime) plus the per-measure
// columns contributed since, row-aligned with those grouping columns.
type entry struct {
	mu              sync.Mutex
	groupingColumns []*core.Column
	measures        map[string]*core.Column
}

func (e *entry) rowCount() int {
	if len(e.groupingColumns) == 0 {
		return 0
	}
	return e.groupingColumns[0].Len()
}

// LRU is the Caffeine-style size- and time-bounded cache policy (§4.7),
// backed by hashicorp/golang-lru/v2's expirable LRU, the teacher's own
// pattern for a fixed-size store with per-entry TTL rather than a
// hand-rolled doubly-linked list.
type LRU struct {
	entries *lru.LRU[Key, *entry]

	statsMu sync.Mutex
	stats   map[string]*Stats

	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// NewLRU builds an LRU cache bounded to size entries, each living at most
// ttl since last write (0 disables expiry).
func NewLRU(size int, ttl time.Duration) *LRU {
	c := &LRU{
		stats: make(map[string]*Stats),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squashql_cache_hits_total",
			Help: "Number of cache hits for primitive measure columns.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squashql_cache_misses_total",
			Help: "Number of cache misses for primitive measure columns.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squashql_cache_evictions_total",
			Help: "Number of cache entries evicted.",
		}),
	}
	onEvict := func(key Key, _ *entry) {
		c.evictions.Inc()
		c.bumpEvictions(key.Principal)
	}
	c.entries = lru.NewLRU[Key, *entry](size, onEvict, ttl)
	return c
}

func (c *LRU) bumpEvictions(principal string) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.statFor(principal).Evictions++
}

func (c *LRU) statFor(principal string) *Stats {
	s, ok := c.stats[principal]
	if !ok {
		s = &Stats{}
		c.stats[principal] = s
	}
	return s
}

func (c *LRU) getOrCreate(key Key, groupingColumns []*core.Column) *entry {
	if e, ok := c.entries.Get(key); ok {
		return e
	}
	e := &entry{groupingColumns: groupingColumns, measures: make(map[string]*core.Column)}
	c.entries.Add(key, e)
	return e
}

// Contains reports whether alias is cached at key with a length matching
// the entry's grouping columns (§7 cache-inconsistency check). A mismatch
// evicts the stale column and reports a miss rather than ever handing back
// misaligned data.
func (c *LRU) Contains(key Key, alias string) bool {
	e, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	col, ok := e.measures[alias]
	if !ok {
		return false
	}
	if col.Len() != e.rowCount() {
		delete(e.measures, alias)
		return false
	}
	return true
}

// CreateRawResult returns the skeleton for key: the entry's previously
// established grouping columns if one exists, otherwise groupingColumns is
// adopted as the stable set for this key's lifetime (§3 CacheKey).
func (c *LRU) CreateRawResult(key Key, groupingColumns []*core.Column) *core.Table {
	e := c.getOrCreate(key, groupingColumns)
	e.mu.Lock()
	defer e.mu.Unlock()
	cols := make([]*core.Column, len(e.groupingColumns))
	copy(cols, e.groupingColumns)
	return core.NewTable(cols...)
}

// ContributeToResult copies cached columns for aliases into table,
// counting one hit or miss per alias for principal's stats (§4.7).
func (c *LRU) ContributeToResult(table *core.Table, key Key, aliases []string) {
	e, ok := c.entries.Get(key)
	if !ok {
		c.recordMisses(key.Principal, len(aliases))
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	hit, miss := 0, 0
	for _, alias := range aliases {
		col, ok := e.measures[alias]
		if !ok || col.Len() != e.rowCount() {
			miss++
			continue
		}
		hit++
		table.AppendColumn(&core.Column{Field: col.Field, Values: col.Values})
	}
	c.recordHits(key.Principal, hit)
	c.recordMisses(key.Principal, miss)
}

// ContributeToCache stores table's columns for aliases under key.
func (c *LRU) ContributeToCache(table *core.Table, key Key, aliases []string) {
	e, ok := c.entries.Get(key)
	if !ok {
		groupingColumns := make([]*core.Column, 0, len(table.Columns()))
		for _, col := range table.Columns() {
			if !containsAlias(aliases, col.Field.Name) {
				groupingColumns = append(groupingColumns, col)
			}
		}
		e = c.getOrCreate(key, groupingColumns)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, alias := range aliases {
		if col := table.Column(alias); col != nil {
			e.measures[alias] = col
		}
	}
}

func containsAlias(aliases []string, name string) bool {
	for _, a := range aliases {
		if a == name {
			return true
		}
	}
	return false
}

func (c *LRU) recordHits(principal string, n int) {
	if n == 0 {
		return
	}
	c.hits.Add(float64(n))
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.statFor(principal).Hits += int64(n)
}

func (c *LRU) recordMisses(principal string, n int) {
	if n == 0 {
		return
	}
	c.misses.Add(float64(n))
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.statFor(principal).Misses += int64(n)
}

// Stats returns principal's lifetime counters.
func (c *LRU) Stats(principal string) Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	if s, ok := c.stats[principal]; ok {
		return *s
	}
	return Stats{}
}

// Clear evicts every entry belonging to principal (INVALIDATE, §6.3).
func (c *LRU) Clear(principal string) {
	for _, key := range c.entries.Keys() {
		if key.Principal == principal {
			c.entries.Remove(key)
		}
	}
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	delete(c.stats, principal)
}
