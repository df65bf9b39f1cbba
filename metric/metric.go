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
package metric

import (
	"context"
	"regexp"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/extract"
	"github.com/rs/zerolog"
)

const (
	SourceComponents       = "components"
	SourceDirect           = "direct"
	SourceCashFlowSection  = "cash-flow-section"
	freeCashFlowNotFound   = "free cash flow not found"
	cashFlowSectionMaxSpan = 5000
)

var (
	cashFlowHeadingRegex    = regexp.MustCompile(`(?i)statements? of cash flows|cash flows? statements?`)
	cashFlowTerminatorRegex = regexp.MustCompile(`(?i)consolidated statements|statement of stockholders|balance sheet|</table>`)
)

// FreeCashFlow derives free cash flow from filing text. Strategies are tried
// in order: operating cash flow less capital expenditure, a directly reported
// free cash flow figure, and finally the component calculation restricted to
// the statement of cash flows. The returned value is in the units of the
// filing; see scale.Infer.
func FreeCashFlow(ctx context.Context, text string) data.Result {
	logger := zerolog.Ctx(ctx)

	if val, ok := fromComponents(ctx, text); ok {
		return data.Success(val, SourceComponents)
	}

	logger.Debug().Msg("free cash flow components not found, searching for reported value")

	if fcf, ok := extract.Extract(text, extract.FreeCashFlow); ok {
		val, err := fcf.Amount()
		if err == nil {
			logger.Debug().Str("Rule", fcf.Source).Float64("Value", val).Msg("found reported free cash flow")
			return data.Success(val, SourceDirect)
		}
		logger.Debug().Err(err).Str("Rule", fcf.Source).Msg("reported free cash flow is not numeric")
	}

	if section, ok := CashFlowSection(text); ok {
		logger.Debug().Int("SectionLength", len(section)).Msg("searching statement of cash flows")
		if val, ok := fromComponents(ctx, section); ok {
			return data.Success(val, SourceCashFlowSection)
		}
	}

	return data.Failure(data.StatusExtractionFailure, freeCashFlowNotFound)
}

// Components extracts operating cash flow and capital expenditure from text.
// ok is false unless both are found.
func Components(text string) (ocf, capex data.ExtractedMetric, ok bool) {
	ocf, ok = extract.Extract(text, extract.OperatingCashFlow)
	if !ok {
		return
	}

	capex, ok = extract.Extract(text, extract.CapitalExpenditure)
	return
}

// NormalizeCapex returns capital expenditure as a cash outflow
func NormalizeCapex(capex float64) float64 {
	if capex > 0 {
		return -capex
	}
	return capex
}

// CashFlowSection returns the text from a statement of cash flows heading to
// the next statement heading or table end. Headings without a terminator in
// the following 5000 characters are skipped.
func CashFlowSection(text string) (string, bool) {
	for _, loc := range cashFlowHeadingRegex.FindAllStringIndex(text, -1) {
		// require at least one character between the heading and the terminator
		start := loc[1] + 1
		if start > len(text) {
			break
		}

		end := min(loc[1]+cashFlowSectionMaxSpan, len(text))
		window := text[start:end]

		// the terminator may extend past the window
		searchEnd := min(end+64, len(text))
		term := cashFlowTerminatorRegex.FindStringIndex(text[start:searchEnd])
		if term == nil || term[0] > len(window) {
			continue
		}

		return text[loc[0] : start+term[0]], true
	}

	return "", false
}

func fromComponents(ctx context.Context, text string) (float64, bool) {
	logger := zerolog.Ctx(ctx)

	ocf, capex, ok := Components(text)
	if !ok {
		return 0, false
	}

	ocfVal, err := ocf.Amount()
	if err != nil {
		logger.Debug().Err(err).Str("Rule", ocf.Source).Msg("operating cash flow is not numeric")
		return 0, false
	}

	capexVal, err := capex.Amount()
	if err != nil {
		logger.Debug().Err(err).Str("Rule", capex.Source).Msg("capital expenditure is not numeric")
		return 0, false
	}

	logger.Debug().
		Str("OperatingCashFlowRule", ocf.Source).Float64("OperatingCashFlow", ocfVal).
		Str("CapitalExpenditureRule", capex.Source).Float64("CapitalExpenditure", capexVal).
		Msg("computed free cash flow from components")

	return ocfVal + NormalizeCapex(capexVal), true
}
