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
package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/penny-vault/edgarfacts/pipeline"
	"github.com/penny-vault/edgarfacts/report"
	"github.com/rs/zerolog"
)

func renderMarkdown(ctx context.Context, out io.Writer, doc string) {
	r, err := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		// statements are wide tables
		glamour.WithWordWrap(160),
	)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("could not create markdown renderer")
		fmt.Fprint(out, doc)
		return
	}

	rendered, err := r.Render(doc)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("could not render markdown")
		fmt.Fprint(out, doc)
		return
	}

	fmt.Fprint(out, rendered)
}

func printLookup(ctx context.Context, out io.Writer, myPipeline *pipeline.Pipeline, ticker string) bool {
	company, result := myPipeline.Lookup(ticker)
	if !result.OK() {
		fmt.Fprintf(out, "Ticker: %s\nError: %s\n", ticker, result.Reason)
		return false
	}

	renderMarkdown(ctx, out, report.CompanyMarkdown(company))
	return true
}

func printFreeCashFlow(out io.Writer, metricReport pipeline.MetricReport) bool {
	fmt.Fprintf(out, "Ticker: %s\n", metricReport.Ticker)

	if metricReport.HasFiling {
		if metricReport.Kind == pipeline.Annual {
			fmt.Fprintf(out, "Retrieving annual free cash flow for %d...\n", metricReport.Year)
		} else {
			fmt.Fprintln(out, "Retrieving quarterly free cash flow...")
		}
		fmt.Fprintln(out, report.FilingLine(metricReport.Filing, metricReport.Kind == pipeline.Quarterly, time.Now()))
	}

	if !metricReport.Result.OK() {
		fmt.Fprintf(out, "Error: %s\n", metricReport.Result.Reason)
		return false
	}

	fmt.Fprintf(out, "%s\n\n\n%s\n%s\n", report.Separator, report.MetricLine(metricReport), report.Separator)
	return true
}

func printIncomeStatement(ctx context.Context, out io.Writer, statementReport pipeline.StatementReport) bool {
	fmt.Fprintf(out, "Ticker: %s\n", statementReport.Ticker)

	if statementReport.HasFiling {
		fmt.Fprintln(out, report.FilingLine(statementReport.Filing, true, time.Now()))
	}

	if !statementReport.Result.OK() {
		fmt.Fprintf(out, "Error: %s\n", statementReport.Result.Reason)
		return false
	}

	renderMarkdown(ctx, out, report.StatementMarkdown(statementReport))
	return true
}
