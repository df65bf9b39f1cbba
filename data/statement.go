// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

import "time"

// StatementRow is one concept of an assembled statement
type StatementRow struct {
	Concept string // human readable name
	Raw     string // concept name as tagged in the filing
	Values  map[time.Time]float64
}

// Statement is a financial statement laid out with one row per concept and
// one column per period end date
type Statement struct {
	Section string
	Periods []time.Time // ascending
	Rows    []StatementRow
}

// Empty reports whether the statement holds no values
func (statement *Statement) Empty() bool {
	return statement == nil || len(statement.Rows) == 0
}

// Value returns the value of the row for the period end date
func (statement *Statement) Value(row int, period time.Time) (float64, bool) {
	if statement == nil || row < 0 || row >= len(statement.Rows) {
		return 0, false
	}

	val, ok := statement.Rows[row].Values[period]
	return val, ok
}
