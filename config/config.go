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

// Package config reads process-level settings once at startup, the same
// way engine.go reads the GMS_EXPERIMENTAL flag: a package-level var set
// from os.Getenv in init(), never re-read mid-process (§4.4, §6.3, §9
// "Global default limit via environment").
package config

import (
	"os"
	"strconv"
)

// DefaultQueryLimitEnv is the environment key overriding DefaultQueryLimit.
const DefaultQueryLimitEnv = "squashql.query.limit"

// defaultQueryLimitFallback is used when DefaultQueryLimitEnv is unset or
// unparsable (§6.3: "negative => default 10,000").
const defaultQueryLimitFallback = 10000

var defaultQueryLimit int

func init() {
	defaultQueryLimit = parseLimit(os.Getenv(DefaultQueryLimitEnv), defaultQueryLimitFallback)
}

// parseLimit parses raw as a positive int, returning fallback if raw is
// empty, unparsable, or not strictly positive (§6.3: "negative => default").
func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// DefaultQueryLimit returns the process-wide default row limit applied
// when a query's requested limit is negative (§6.3).
func DefaultQueryLimit() int {
	return defaultQueryLimit
}
