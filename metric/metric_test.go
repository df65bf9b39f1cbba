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
package metric_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/metric"
)

var _ = Describe("FreeCashFlow", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("from components", func() {
		DescribeTable("capital expenditure sign",
			func(text string) {
				result := metric.FreeCashFlow(ctx, text)
				Expect(result.OK()).To(BeTrue())
				Expect(result.Value).To(Equal(70.0))
				Expect(result.Source).To(Equal(metric.SourceComponents))
			},
			Entry("unsigned", "Net cash provided by operating activities 100\nCapital expenditures 30\n"),
			Entry("negative", "Net cash provided by operating activities 100\nCapital expenditures -30\n"),
			Entry("parenthesised", "Net cash provided by operating activities 100\nCapital expenditures (30)\n"),
		)

		It("fails when capital expenditure is missing", func() {
			result := metric.FreeCashFlow(ctx, "Net cash provided by operating activities 100")
			Expect(result.OK()).To(BeFalse())
			Expect(result.Status).To(Equal(data.StatusExtractionFailure))
		})

		It("returns both components", func() {
			ocf, capex, ok := metric.Components("Net cash provided by operating activities 1,200\nPurchases of property and equipment (300)")
			Expect(ok).To(BeTrue())
			Expect(ocf.Raw).To(Equal("1,200"))
			Expect(capex.Raw).To(Equal("-300"))
		})
	})

	It("uses a reported free cash flow when components are absent", func() {
		result := metric.FreeCashFlow(ctx, "Free cash flow for the quarter was 55.")
		Expect(result.OK()).To(BeTrue())
		Expect(result.Value).To(Equal(55.0))
		Expect(result.Source).To(Equal(metric.SourceDirect))
	})

	It("prefers components over a reported free cash flow", func() {
		text := "Net cash provided by operating activities 100\nCapital expenditures (30)\nFree cash flow for the quarter was 55."
		result := metric.FreeCashFlow(ctx, text)
		Expect(result.OK()).To(BeTrue())
		Expect(result.Value).To(Equal(70.0))
		Expect(result.Source).To(Equal(metric.SourceComponents))
	})

	// The cash flow section is a substring of the document, so any components
	// it holds are already found by the whole-text pass. FreeCashFlow never
	// reports SourceCashFlowSection for text it can parse at all; the section
	// window is covered directly below.
	It("attributes components inside a cash flow statement to the whole-text pass", func() {
		text := "Consolidated Statements of Cash Flows\nNet cash provided by operating activities 100\nCapital expenditures (30)\n</table>"
		result := metric.FreeCashFlow(ctx, text)
		Expect(result.OK()).To(BeTrue())
		Expect(result.Value).To(Equal(70.0))
		Expect(result.Source).To(Equal(metric.SourceComponents))
	})

	It("reports a failure with a reason when nothing is found", func() {
		result := metric.FreeCashFlow(ctx, "This filing discusses risk factors only.")
		Expect(result.Status).To(Equal(data.StatusExtractionFailure))
		Expect(result.Reason).To(Equal("free cash flow not found"))
		Expect(result.Err()).To(MatchError(data.ErrExtraction))
	})

	DescribeTable("normalizing capital expenditure",
		func(in, expected float64) {
			Expect(metric.NormalizeCapex(in)).To(Equal(expected))
			Expect(metric.NormalizeCapex(metric.NormalizeCapex(in))).To(Equal(expected))
		},
		Entry("positive", 30.0, -30.0),
		Entry("negative", -30.0, -30.0),
		Entry("zero", 0.0, 0.0),
	)
})

var _ = Describe("CashFlowSection", func() {
	It("ends at the next statement or table end", func() {
		text := "Intro. Consolidated Statements of Cash Flows\nNet cash provided by operating activities 10\n</table> Balance sheet"
		section, ok := metric.CashFlowSection(text)
		Expect(ok).To(BeTrue())
		Expect(section).To(HavePrefix("Statements of Cash Flows"))
		Expect(section).To(ContainSubstring("operating activities 10"))
		Expect(section).NotTo(ContainSubstring("</table>"))
	})

	It("skips headings without a terminator in range", func() {
		text := "statement of cash flows " + strings.Repeat("x", 6000) + " cash flow statement abc balance sheet"
		section, ok := metric.CashFlowSection(text)
		Expect(ok).To(BeTrue())
		Expect(section).To(Equal("cash flow statement abc "))
	})

	It("reports absence without a heading", func() {
		_, ok := metric.CashFlowSection("balance sheet only")
		Expect(ok).To(BeFalse())
	})
})
