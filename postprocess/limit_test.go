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

package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squashql/squashql-go/core"
)

func threeRowTable() *core.Table {
	return core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"FR", "US", "DE"}},
	)
}

func TestTruncateAndNotify_NotifiesWhenExactlyAtLimit(t *testing.T) {
	tbl := threeRowTable()
	var notified int
	TruncateAndNotify(tbl, 3, func(limit int) { notified = limit })
	assert.Equal(t, 3, notified)
	assert.Equal(t, 3, tbl.Count())
}

func TestTruncateAndNotify_TruncatesBelowLimitWithoutNotifying(t *testing.T) {
	tbl := threeRowTable()
	var notified int
	TruncateAndNotify(tbl, 2, func(limit int) { notified = limit })
	assert.Equal(t, 0, notified)
	assert.Equal(t, 2, tbl.Count())
}

func TestTruncateAndNotify_AboveRowCountIsNoop(t *testing.T) {
	tbl := threeRowTable()
	called := false
	TruncateAndNotify(tbl, 10, func(limit int) { called = true })
	assert.False(t, called)
	assert.Equal(t, 3, tbl.Count())
}

func TestTruncateAndNotify_NilNotifierIsSafe(t *testing.T) {
	tbl := threeRowTable()
	assert.NotPanics(t, func() { TruncateAndNotify(tbl, 3, nil) })
}
