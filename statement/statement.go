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
package statement

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/penny-vault/edgarfacts/data"
)

// IncomeStatementSections lists the section names filers use for the income
// statement, in order of preference
var IncomeStatementSections = []string{
	"StatementsOfIncome",
	"IncomeStatement",
	"ConsolidatedStatementsOfIncome",
	"ConsolidatedIncomeStatements",
	"StatementOfIncome",
	"StatementsOfOperations",
	"ConsolidatedOperations",
	"ConsolidatedStatementsOfOperations",
	"StatementsOfEarnings",
	"ConsolidatedEarnings",
	"ConsolidatedStatementsOfEarnings",
}

var camelBoundaryRegex = regexp.MustCompile(`([a-z])([A-Z])`)

// Assemble builds the income statement from structured filing data
func Assemble(facts *data.StructuredFacts) (*data.Statement, error) {
	return AssembleSection(facts, IncomeStatementSections)
}

// AssembleSection builds a statement from the first section in aliases that
// is present in facts. Only entity-wide facts with a period end date are
// used and the first fact for each end date wins.
func AssembleSection(facts *data.StructuredFacts, aliases []string) (*data.Statement, error) {
	var section *data.Section
	for _, alias := range aliases {
		if found, ok := facts.Section(alias); ok {
			section = found
			break
		}
	}

	if section == nil {
		return &data.Statement{}, fmt.Errorf("%w: no statement section in filing", data.ErrNotFound)
	}

	statement := &data.Statement{
		Section: section.Name,
	}

	periods := make(map[time.Time]struct{})
	for _, concept := range section.Concepts {
		values := make(map[time.Time]float64)
		claimed := make(map[time.Time]struct{})
		for _, fact := range concept.Facts {
			if fact.HasSegment || fact.EndDate == "" {
				continue
			}

			periodEnd, err := time.Parse(time.DateOnly, fact.EndDate)
			if err != nil {
				continue
			}

			if _, ok := claimed[periodEnd]; ok {
				continue
			}
			claimed[periodEnd] = struct{}{}

			val, err := strconv.ParseFloat(fact.Value, 64)
			if err != nil {
				continue
			}

			values[periodEnd] = val
			periods[periodEnd] = struct{}{}
		}

		if len(values) == 0 {
			continue
		}

		statement.Rows = append(statement.Rows, data.StatementRow{
			Concept: Readable(concept.Name),
			Raw:     concept.Name,
			Values:  values,
		})
	}

	if len(statement.Rows) == 0 {
		return &data.Statement{Section: section.Name}, fmt.Errorf("%w: section %s has no entity-wide facts", data.ErrNotFound, section.Name)
	}

	statement.Periods = make([]time.Time, 0, len(periods))
	for period := range periods {
		statement.Periods = append(statement.Periods, period)
	}

	sort.Slice(statement.Periods, func(i, j int) bool {
		return statement.Periods[i].Before(statement.Periods[j])
	})

	return statement, nil
}

// Readable splits a concept name at each lowercase to uppercase boundary,
// e.g. NetIncomeLoss becomes Net Income Loss
func Readable(concept string) string {
	return camelBoundaryRegex.ReplaceAllString(concept, "$1 $2")
}
