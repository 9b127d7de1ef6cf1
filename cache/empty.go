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

import "github.com/squashql/squashql-go/core"

// Empty is the no-op cache policy: every lookup misses, nothing is
// stored. Useful when a query opts out with queryCache=NOT_USE (§6.3).
type Empty struct{}

func (Empty) Contains(Key, string) bool { return false }

func (Empty) CreateRawResult(_ Key, groupingColumns []*core.Column) *core.Table {
	return core.NewTable(groupingColumns...)
}

func (Empty) ContributeToResult(*core.Table, Key, []string) {}
func (Empty) ContributeToCache(*core.Table, Key, []string)  {}
func (Empty) Stats(string) Stats                            { return Stats{} }
func (Empty) Clear(string)                                  {}
