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

import "github.com/squashql/squashql-go/core"

// Reshape implements the GROUP column-set of §4.8 item 1: for each row of
// tbl, and for each bucket of def whose Values contains the row's
// def.Source cell, it emits one output row carrying every original
// column plus a new def.Field column holding the bucket's Name. A row
// matching no bucket contributes nothing to the reshaped table (it
// belongs to none of the caller's declared groups); a row matching
// several buckets is duplicated once per match, which is the point of a
// GROUP column-set: letting a dimension value belong to more than one
// reporting bucket (e.g. a country appearing under more than one sales
// region).
//
// Reshape runs once per scope, over every scope's table, before
// evaluation begins (§4.8: "reshape every scope's table with the grouper
// before evaluation begins"), so that Computed/Comparison measures
// evaluate over the already-expanded rows exactly like any other
// grouping column.
func Reshape(tbl *core.Table, def core.GroupDef) *core.Table {
	srcCol := tbl.Column(def.Source)
	if srcCol == nil {
		return tbl
	}

	out := make([]*core.Column, 0, len(tbl.Columns())+1)
	for _, c := range tbl.Columns() {
		out = append(out, &core.Column{Field: c.Field, Values: nil})
	}
	groupCol := &core.Column{Field: core.Field{Name: def.Field, Type: core.String}}
	out = append(out, groupCol)

	for row := 0; row < tbl.Count(); row++ {
		for _, bucket := range def.Buckets {
			if !bucketContains(bucket, srcCol.Values[row]) {
				continue
			}
			for i, c := range tbl.Columns() {
				out[i].Values = append(out[i].Values, c.Values[row])
			}
			groupCol.Values = append(groupCol.Values, bucket.Name)
		}
	}
	return core.NewTable(out...)
}

func bucketContains(b core.GroupBucket, v interface{}) bool {
	for _, candidate := range b.Values {
		if candidate == v {
			return true
		}
	}
	return false
}
