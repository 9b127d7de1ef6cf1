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

// TruncateAndNotify keeps only tbl's first limit rows (a negative limit
// is a no-op, Table.Truncate's own guard) and, if the row count was
// exactly limit before truncation, invokes notifier with limit -- the
// caller's signal that output may have been cut off (§4.8 step 5, §8
// property 7: "When rowCount == queryLimit, limitNotifier is invoked
// exactly once").
func TruncateAndNotify(tbl *core.Table, limit int, notifier LimitNotifier) {
	truncated := tbl.Count() == limit
	tbl.Truncate(limit)
	if truncated && notifier != nil {
		notifier(limit)
	}
}
