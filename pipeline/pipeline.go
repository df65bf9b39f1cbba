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
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/locator"
	"github.com/penny-vault/edgarfacts/metric"
	"github.com/penny-vault/edgarfacts/scale"
	"github.com/penny-vault/edgarfacts/statement"
	"github.com/rs/zerolog"
)

// Directory resolves ticker symbols to companies
type Directory interface {
	Find(ticker string) (data.Company, bool)
}

// FilingSource retrieves filing histories and documents
type FilingSource interface {
	locator.PageFetcher
	Submissions(ctx context.Context, cik int64) (*data.SubmissionsFeed, error)
	Document(ctx context.Context, cik int64, filing data.Filing) (string, error)
	ResolveFilingURL(ctx context.Context, cik int64, filing data.Filing) string
}

// FactSource retrieves the structured XBRL facts of a filing
type FactSource interface {
	StructuredFacts(ctx context.Context, filingURL string) (*data.StructuredFacts, error)
}

type MetricKind int

const (
	Quarterly MetricKind = iota
	Annual
)

func (kind MetricKind) String() string {
	if kind == Annual {
		return "Annual"
	}
	return "Quarterly"
}

func (kind MetricKind) FilingType() data.FilingType {
	if kind == Annual {
		return data.AnnualReport
	}
	return data.QuarterlyReport
}

// MetricReport is the outcome of a free cash flow request
type MetricReport struct {
	Ticker    string
	Company   data.Company
	Filing    data.Filing
	HasFiling bool
	Kind      MetricKind
	Year      int
	Result    data.Result

	// only set when Result is OK
	Scale    data.CurrencyScale
	Absolute float64
	Display  scale.Display
}

// PeriodLabel returns the report period of the filing or a description of
// the requested period when the feed had none
func (report MetricReport) PeriodLabel() string {
	if report.Kind == Annual {
		return report.Filing.PeriodOr(fmt.Sprintf("%d", report.Year))
	}
	return report.Filing.PeriodOr("current quarter")
}

// StatementReport is the outcome of an income statement request
type StatementReport struct {
	Ticker    string
	Company   data.Company
	Filing    data.Filing
	HasFiling bool
	Statement *data.Statement
	Result    data.Result
}

// Pipeline resolves a ticker to a filing and extracts metrics from it
type Pipeline struct {
	Directory Directory
	Filings   FilingSource
	Facts     FactSource
}

// Lookup finds the company for a ticker
func (pipeline *Pipeline) Lookup(ticker string) (data.Company, data.Result) {
	if pipeline.Directory == nil {
		return data.Company{}, data.Failure(data.StatusNotFound, "Ticker not found.")
	}

	company, ok := pipeline.Directory.Find(ticker)
	if !ok {
		return data.Company{}, data.Failure(data.StatusNotFound, "Ticker not found.")
	}

	return company, data.Success(0, "directory")
}

// QuarterlyFreeCashFlow computes free cash flow from the latest 10-Q
func (pipeline *Pipeline) QuarterlyFreeCashFlow(ctx context.Context, ticker string) MetricReport {
	return pipeline.freeCashFlow(ctx, ticker, Quarterly, 0)
}

// AnnualFreeCashFlow computes free cash flow from the 10-K for year, falling
// back to the latest 10-K when no filing matches the year
func (pipeline *Pipeline) AnnualFreeCashFlow(ctx context.Context, ticker string, year int) MetricReport {
	return pipeline.freeCashFlow(ctx, ticker, Annual, year)
}

func (pipeline *Pipeline) freeCashFlow(ctx context.Context, ticker string, kind MetricKind, year int) MetricReport {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	report := MetricReport{
		Ticker: ticker,
		Kind:   kind,
		Year:   year,
	}

	company, result := pipeline.Lookup(ticker)
	if !result.OK() {
		report.Result = result
		return report
	}
	report.Company = company

	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Int64("CIK", company.CIK).Stringer("Kind", kind).Logger()
	ctx = logger.WithContext(ctx)

	filing, result := pipeline.locate(ctx, company, kind.FilingType(), year)
	if !result.OK() {
		report.Result = result
		return report
	}
	report.Filing = filing
	report.HasFiling = true

	logger.Info().Object("Filing", filing).Msg("found filing")

	text, err := pipeline.Filings.Document(ctx, company.CIK, filing)
	if err != nil || text == "" {
		logger.Error().Err(err).Object("Filing", filing).Msg("could not retrieve filing document")
		report.Result = data.Failure(data.StatusRetrievalFailure, "Unable to fetch document text.")
		return report
	}

	report.Result = metric.FreeCashFlow(ctx, text)
	if !report.Result.OK() {
		logger.Warn().Str("Reason", report.Result.Reason).Msg("free cash flow extraction failed")
		return report
	}

	report.Scale = scale.Infer(text)
	report.Absolute = scale.Apply(report.Result.Value, report.Scale)
	report.Display = scale.Format(report.Absolute)

	logger.Info().
		Str("Strategy", report.Result.Source).
		Float64("Raw", report.Result.Value).
		Str("Scale", report.Scale.Label).
		Stringer("ScaleSource", report.Scale.Source).
		Float64("FreeCashFlow", report.Absolute).
		Msg("computed free cash flow")

	return report
}

// IncomeStatement assembles the income statement of the latest 10-K from its
// XBRL facts
func (pipeline *Pipeline) IncomeStatement(ctx context.Context, ticker string) StatementReport {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	report := StatementReport{
		Ticker:    ticker,
		Statement: &data.Statement{},
	}

	company, result := pipeline.Lookup(ticker)
	if !result.OK() {
		report.Result = result
		return report
	}
	report.Company = company

	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Int64("CIK", company.CIK).Logger()
	ctx = logger.WithContext(ctx)

	filing, result := pipeline.locate(ctx, company, data.AnnualReport, 0)
	if !result.OK() {
		report.Result = result
		return report
	}
	report.Filing = filing
	report.HasFiling = true

	if pipeline.Facts == nil {
		report.Result = data.Failure(data.StatusRetrievalFailure, "Failed to fetch XBRL data.")
		return report
	}

	filingURL := pipeline.Filings.ResolveFilingURL(ctx, company.CIK, filing)
	facts, err := pipeline.Facts.StructuredFacts(ctx, filingURL)
	if err != nil {
		logger.Error().Err(err).Str("FilingURL", filingURL).Msg("could not retrieve XBRL data")
		report.Result = data.Failure(data.StatusRetrievalFailure, "Failed to fetch XBRL data.")
		return report
	}

	stmt, err := statement.Assemble(facts)
	report.Statement = stmt
	if err != nil {
		logger.Warn().Err(err).Msg("could not assemble income statement")
		report.Result = data.Failure(data.StatusNotFound, "No income statement data available.")
		return report
	}

	logger.Info().Str("Section", stmt.Section).Int("NumRows", len(stmt.Rows)).Int("NumPeriods", len(stmt.Periods)).Msg("assembled income statement")
	report.Result = data.Success(0, stmt.Section)

	return report
}

func (pipeline *Pipeline) locate(ctx context.Context, company data.Company, filingType data.FilingType, year int) (data.Filing, data.Result) {
	logger := zerolog.Ctx(ctx)

	if pipeline.Filings == nil {
		return data.Filing{}, data.Failure(data.StatusRetrievalFailure, "no filing source configured")
	}

	feed, err := pipeline.Filings.Submissions(ctx, company.CIK)
	if err != nil {
		logger.Error().Err(err).Msg("could not retrieve submissions")
		return data.Filing{}, data.Failure(data.StatusRetrievalFailure, "Unable to retrieve filing history.")
	}

	filing, ok := locator.Locate(ctx, feed, filingType, year, pipeline.Filings)
	if !ok && year != 0 {
		logger.Info().Int("Year", year).Msg("no filing for year, using latest filing")
		filing, ok = locator.Latest(feed, filingType)
	}

	if !ok {
		reason := fmt.Sprintf("No %s filing found.", filingType)
		if filingType == data.AnnualReport && year != 0 {
			reason = "No annual filing found."
		}
		return data.Filing{}, data.Failure(data.StatusNotFound, reason)
	}

	return filing, data.Success(0, "locator")
}
