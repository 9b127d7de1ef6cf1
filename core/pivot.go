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

// PivotTable reshapes a ColumnarTable's rows into a cross-tab: one row per
// distinct combination of RowFields, one column group per distinct
// combination of ColFields, cells filled from ValueAliases (§3, §4.8).
type PivotTable struct {
	Table        *ColumnarTable
	RowFields    []string
	ColFields    []string
	ValueAliases []string
	HiddenTotals bool
}
