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

// CompareOp is a scalar comparison operator for a Predicate.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Lte
	Gt
	Gte
	In
)

// Predicate is a single filter clause: `field <op> value`. QueryEngine
// implementations translate Predicates into their own backend query
// language (§6.1); this core never interprets them itself.
type Predicate struct {
	Field string
	Op    CompareOp
	Value interface{}
}

// And is a conjunction of Predicates. An empty And matches every row.
type And []Predicate
