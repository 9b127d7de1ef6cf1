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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squashql/squashql-go/core"
)

func TestEmpty_AlwaysMisses(t *testing.T) {
	e := Empty{}
	key := Key{ScopeHash: 1, Principal: "alice"}

	col := &core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"FR"}}
	table := e.CreateRawResult(key, []*core.Column{col})
	e.ContributeToCache(table, key, []string{"revenue.sum"})

	assert.False(t, e.Contains(key, "revenue.sum"))

	result := e.CreateRawResult(key, []*core.Column{col})
	e.ContributeToResult(result, key, []string{"revenue.sum"})
	assert.False(t, result.HasColumn("revenue.sum"))

	assert.Equal(t, Stats{}, e.Stats(key.Principal))
}
