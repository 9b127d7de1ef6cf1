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

package memengine

import "github.com/squashql/squashql-go/core"

// DemoTable is the name of the seed dataset NewDemo loads, exercised by
// the seed scenarios S1-S6: two countries, two years, revenue and cost.
const DemoTable = "sales"

// NewDemo builds an Engine preloaded with a small revenue/cost dataset by
// country and year, big enough to exercise grouping, rollup, computed
// measures, period-over-period comparison (shifting year by one), and
// pivoting without requiring a real data source.
func NewDemo() *Engine {
	e := New()
	e.CreateTable(DemoTable, core.Schema{
		{Name: "country", Type: core.String},
		{Name: "year", Type: core.Integer},
		{Name: "revenue", Type: core.Floating},
		{Name: "cost", Type: core.Floating},
	})
	_ = e.InsertRows(DemoTable, [][]interface{}{
		{"FR", int64(2023), 10.0, 4.0},
		{"FR", int64(2024), 15.0, 6.0},
		{"US", int64(2023), 20.0, 8.0},
		{"US", int64(2024), 25.0, 10.0},
	})
	return e
}
