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
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/pipeline"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

// filingAge renders relative ages for filings up to a decade old; English
// falls back to a plain date after three days
var filingAge = func() timeago.Config {
	cfg := timeago.English
	cfg.Max = 10 * 365 * 24 * time.Hour
	return cfg
}()

// Separator frames a metric line
var Separator = strings.Repeat("_", 112)

// MetricLine renders a successful free cash flow report, e.g.
// AAPL Quarterly Free Cash Flow (Period: 2024-06-29): $26.7 B (26,700,000,000.00 dollars)
func MetricLine(report pipeline.MetricReport) string {
	return fmt.Sprintf("%s %s Free Cash Flow (Period: %s): %s (%s)",
		report.Ticker, report.Kind, report.PeriodLabel(),
		amountStyle.Render(report.Display.Decorated), report.Display.Plain)
}

// FilingLine describes the filing a report was computed from. Latest selects
// the wording used when the most recent filing was requested.
func FilingLine(filing data.Filing, latest bool, now time.Time) string {
	age := ""
	if filingDate, err := time.Parse(time.DateOnly, filing.FilingDate); err == nil {
		age = fmt.Sprintf(" (%s)", filingAge.FormatReference(filingDate, now))
	}

	qualifier := ""
	if latest {
		qualifier = "latest "
	}

	return fmt.Sprintf("Found %s%s filing from %s%s for period %s",
		qualifier, filing.Type, filing.FilingDate, age, filing.PeriodOr(data.UnknownPeriod))
}

// CompanyMarkdown describes a company from the ticker directory
func CompanyMarkdown(company data.Company) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("# %s\n\n", strings.ToUpper(company.Ticker)))
	builder.WriteString(fmt.Sprintf("  * Company Name: %s\n", company.Title))
	builder.WriteString(fmt.Sprintf("  * CIK: %d\n", company.CIK))
	return builder.String()
}

// StatementMarkdown renders an assembled statement as a markdown table with
// one row per concept and one column per period
func StatementMarkdown(report pipeline.StatementReport) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# Income Statement for %s (%s)\n\n", report.Company.Title, report.Ticker))

	stmt := report.Statement
	if stmt.Empty() {
		builder.WriteString("No income statement data available.\n")
		return builder.String()
	}

	if report.HasFiling {
		builder.WriteString(fmt.Sprintf("Filed %s, section %s\n\n", report.Filing.FilingDate, stmt.Section))
	}

	builder.WriteString("| Concept |")
	for _, period := range stmt.Periods {
		builder.WriteString(fmt.Sprintf(" %s |", period.Format(time.DateOnly)))
	}
	builder.WriteString("\n|---|")
	for range stmt.Periods {
		builder.WriteString("---:|")
	}
	builder.WriteString("\n")

	for idx, row := range stmt.Rows {
		builder.WriteString(fmt.Sprintf("| %s |", row.Concept))
		for _, period := range stmt.Periods {
			if val, ok := stmt.Value(idx, period); ok {
				builder.WriteString(p.Sprintf(" %.0f |", val))
			} else {
				builder.WriteString("  |")
			}
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
