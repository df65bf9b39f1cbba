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
	"strings"

	"github.com/rs/zerolog"
)

type FilingType string

const (
	AnnualReport    FilingType = "10-K"
	QuarterlyReport FilingType = "10-Q"
)

// UnknownPeriod is displayed in place of a missing report period
const UnknownPeriod = "Unknown"

// Filing describes one submission from a company's filing history. Filings
// are created by normalizing the column-aligned submissions feed and are not
// modified afterwards.
type Filing struct {
	Type            FilingType
	FilingDate      string // YYYY-MM-DD
	AccessionNumber string
	PrimaryDocument string
	Period          string // YYYY-MM-DD, empty when the feed has no report date
}

// HasPeriod reports whether the feed provided a report period for the filing
func (filing Filing) HasPeriod() bool {
	return filing.Period != ""
}

// PeriodOr returns the report period or fallback when it is absent
func (filing Filing) PeriodOr(fallback string) string {
	if filing.HasPeriod() {
		return filing.Period
	}
	return fallback
}

// AccessionNoDashes returns the accession number in the form used by archive URLs
func (filing Filing) AccessionNoDashes() string {
	return strings.ReplaceAll(filing.AccessionNumber, "-", "")
}

func (filing Filing) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Type", string(filing.Type))
	e.Str("FilingDate", filing.FilingDate)
	e.Str("AccessionNumber", filing.AccessionNumber)
	e.Str("PrimaryDocument", filing.PrimaryDocument)
	e.Str("Period", filing.PeriodOr(UnknownPeriod))
}

// FilingColumns holds the parallel sequences EDGAR uses to describe a list of
// filings. Entries for one submission share the same index in every column.
type FilingColumns struct {
	Form            []string `json:"form"`
	FilingDate      []string `json:"filingDate"`
	AccessionNumber []string `json:"accessionNumber"`
	PrimaryDocument []string `json:"primaryDocument"`
	ReportDate      []string `json:"reportDate"`
	PeriodOfReport  []string `json:"periodOfReport"`
}

// Normalize converts the columns into a list of filings in feed order. An
// index is only emitted when every required column has a value for it; the
// report date column may be shorter than the rest, in which case the period
// is left empty.
func (columns FilingColumns) Normalize() []Filing {
	periods := columns.ReportDate
	if periods == nil {
		periods = columns.PeriodOfReport
	}

	filings := make([]Filing, 0, len(columns.Form))
	for idx, form := range columns.Form {
		if idx >= len(columns.FilingDate) || idx >= len(columns.AccessionNumber) || idx >= len(columns.PrimaryDocument) {
			break
		}

		filing := Filing{
			Type:            FilingType(form),
			FilingDate:      columns.FilingDate[idx],
			AccessionNumber: columns.AccessionNumber[idx],
			PrimaryDocument: columns.PrimaryDocument[idx],
		}

		if idx < len(periods) {
			filing.Period = periods[idx]
		}

		filings = append(filings, filing)
	}

	return filings
}

// ArchivePage references an older page of a company's filing history
type ArchivePage struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filingCount"`
	FilingFrom  string `json:"filingFrom"`
	FilingTo    string `json:"filingTo"`
}

// SubmissionsFeed is a company's filing history with the recent window
// already normalized
type SubmissionsFeed struct {
	CIK      string
	Name     string
	Recent   []Filing
	Archives []ArchivePage
}
