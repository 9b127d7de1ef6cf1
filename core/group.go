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

// GroupBucket is one named bucket of a dynamic GROUP column-set: rows
// whose Source field value appears in Values are duplicated into the
// bucket under Name (§4.8.1, §6.3 "GROUP").
type GroupBucket struct {
	Name   string
	Values []interface{}
}

// GroupDef requests a dynamic GROUP reshape: Field is the synthetic
// column postprocess.Reshape introduces, Source is the underlying
// dimension the bucket membership is tested against. It lives in core
// rather than analyzer or postprocess so both can refer to it without
// an import cycle: analyzer's CompiledQuery carries one, postprocess's
// Reshape and exec's Pipeline both consume it.
type GroupDef struct {
	Field   string
	Source  string
	Buckets []GroupBucket
}
