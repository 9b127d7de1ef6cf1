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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightKeyFor_OrderIndependent(t *testing.T) {
	key := Key{ScopeHash: 42, Principal: "alice"}
	a := flightKeyFor(key, []string{"revenue.sum", "cost.sum"})
	b := flightKeyFor(key, []string{"cost.sum", "revenue.sum"})
	assert.Equal(t, a, b)
}

func TestFlightKeyFor_DistinctPrincipalsDiffer(t *testing.T) {
	a := flightKeyFor(Key{ScopeHash: 42, Principal: "alice"}, []string{"revenue.sum"})
	b := flightKeyFor(Key{ScopeHash: 42, Principal: "bob"}, []string{"revenue.sum"})
	assert.NotEqual(t, a, b)
}

func TestGlobal_FetchMissingCollapsesConcurrentCalls(t *testing.T) {
	g := NewGlobal()
	key := Key{ScopeHash: 7, Principal: "alice"}

	const n = 4
	var calls int64
	var entered int64
	release := make(chan struct{})
	start := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]interface{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			atomic.AddInt64(&entered, 1)
			v, err := g.FetchMissing(key, []string{"revenue.sum"}, func() (interface{}, error) {
				atomic.AddInt64(&calls, 1)
				// Block until every goroutine has joined this FetchMissing
				// call, so none races ahead and starts a second, uncollapsed
				// fetch before the others arrive.
				for atomic.LoadInt64(&entered) < n {
				}
				<-release
				return "fetched", nil
			})
			require.NoError(t, err)
			results[idx] = v
		}(i)
	}
	close(start)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	for _, r := range results {
		assert.Equal(t, "fetched", r)
	}
}
