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

package boltcatalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squashql/squashql-go/core"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCatalog_PutAndList(t *testing.T) {
	c := openTestCatalog(t)

	sales := core.Store{
		Name: "sales",
		Schema: core.Schema{
			{Name: "country", Type: core.String},
			{Name: "revenue", Type: core.Floating},
		},
	}
	require.NoError(t, c.PutStore(sales))

	stores := c.StoresByName()
	require.Contains(t, stores, "sales")
	assert.Equal(t, sales.Schema, stores["sales"].Schema)
}

func TestCatalog_Delete(t *testing.T) {
	c := openTestCatalog(t)
	require.NoError(t, c.PutStore(core.Store{Name: "tmp"}))
	require.NoError(t, c.DeleteStore("tmp"))
	assert.NotContains(t, c.StoresByName(), "tmp")
}

func TestCatalog_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	c1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c1.PutStore(core.Store{Name: "sales"}))
	require.NoError(t, c1.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()
	assert.Contains(t, c2.StoresByName(), "sales")
}
