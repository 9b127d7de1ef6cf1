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

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Settings is the YAML-file shape for process-level settings (§6.3): an
// alternative to DefaultQueryLimitEnv for deployments that prefer a config
// file over an environment variable.
type Settings struct {
	QueryLimit int `yaml:"queryLimit"`
}

// LoadFile reads a YAML settings file at path and applies it over the
// current defaults, the same one-shot-at-startup semantics as the env var
// path (§6.3). A QueryLimit of zero or less in the file is ignored, matching
// DefaultQueryLimitEnv's own validation, so a config file never lowers the
// limit to something nonsensical.
func LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return err
	}
	if s.QueryLimit > 0 {
		defaultQueryLimit = s.QueryLimit
	}
	return nil
}
