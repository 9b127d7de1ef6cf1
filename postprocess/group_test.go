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

func countryOnlyTable() *core.Table {
	return core.NewTable(
		&core.Column{Field: core.Field{Name: "country", Type: core.String}, Values: []interface{}{"FR", "US", "DE", "JP"}},
		&core.Column{Field: core.Field{Name: "revenue.sum", Type: core.Floating}, Values: []interface{}{10.0, 20.0, 30.0, 40.0}},
	)
}

func TestReshape_DuplicatesRowMatchingMultipleBuckets(t *testing.T) {
	def := core.GroupDef{
		Field:  "region",
		Source: "country",
		Buckets: []core.GroupBucket{
			{Name: "Europe", Values: []interface{}{"FR", "US", "DE"}},
			{Name: "NorthAmerica", Values: []interface{}{"US"}},
		},
	}
	out := Reshape(countryOnlyTable(), def)

	assert.Equal(t, 4, out.Count()) // FR/Europe, US/Europe, US/NorthAmerica, DE/Europe
	assert.Equal(t, []interface{}{"Europe", "Europe", "NorthAmerica", "Europe"}, out.Column("region").Values)
	assert.Equal(t, []interface{}{"FR", "US", "US", "DE"}, out.Column("country").Values)
}

func TestReshape_RowMatchingNoBucketIsDropped(t *testing.T) {
	def := core.GroupDef{
		Field:  "region",
		Source: "country",
		Buckets: []core.GroupBucket{
			{Name: "Europe", Values: []interface{}{"FR"}},
		},
	}
	out := Reshape(countryOnlyTable(), def)

	assert.Equal(t, 1, out.Count())
	assert.Equal(t, []interface{}{"FR"}, out.Column("country").Values)
}

func TestReshape_MissingSourceColumnReturnsTableUnchanged(t *testing.T) {
	def := core.GroupDef{Field: "region", Source: "nonexistent"}
	tbl := countryOnlyTable()
	out := Reshape(tbl, def)
	assert.Same(t, tbl, out)
}

func TestBucketContains(t *testing.T) {
	b := core.GroupBucket{Name: "Europe", Values: []interface{}{"FR", "DE"}}
	assert.True(t, bucketContains(b, "FR"))
	assert.False(t, bucketContains(b, "US"))
}
