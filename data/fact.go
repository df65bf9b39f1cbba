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

import (
	"time"

	"github.com/rs/zerolog"
)

// FinancialFact is a single entity-wide value reported for a concept
type FinancialFact struct {
	Concept   string
	Value     float64
	PeriodEnd time.Time
}

func (fact FinancialFact) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Concept", fact.Concept)
	e.Float64("Value", fact.Value)
	e.Time("PeriodEnd", fact.PeriodEnd)
}

// RawFact is a fact as it appears in the XBRL-to-JSON payload, before any
// filtering or conversion
type RawFact struct {
	Value      string
	StartDate  string
	EndDate    string
	Instant    string
	HasSegment bool
}

// Concept is one tagged line item of a statement section
type Concept struct {
	Name  string
	Facts []RawFact
}

// Section is a named statement section such as StatementsOfIncome
type Section struct {
	Name     string
	Concepts []Concept
}

// StructuredFacts is an XBRL filing converted to JSON. Sections and concepts
// keep the order of the source document.
type StructuredFacts struct {
	Sections []Section
}

// Section returns the section with the given name
func (facts *StructuredFacts) Section(name string) (*Section, bool) {
	if facts == nil {
		return nil, false
	}

	for idx := range facts.Sections {
		if facts.Sections[idx].Name == name {
			return &facts.Sections[idx], true
		}
	}

	return nil, false
}
