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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd_EmptyMatchesEverything(t *testing.T) {
	var and And
	assert.Empty(t, and)
}

func TestPredicate_Fields(t *testing.T) {
	p := Predicate{Field: "year", Op: Gte, Value: int64(2024)}
	assert.Equal(t, "year", p.Field)
	assert.Equal(t, Gte, p.Op)
	assert.Equal(t, int64(2024), p.Value)
}

func TestCompareOp_DistinctValues(t *testing.T) {
	ops := []CompareOp{Eq, Neq, Lt, Lte, Gt, Gte, In}
	seen := make(map[CompareOp]bool)
	for _, op := range ops {
		assert.False(t, seen[op])
		seen[op] = true
	}
}
