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
package pipeline_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/directory"
	"github.com/penny-vault/edgarfacts/pipeline"
)

type fakeFilings struct {
	feed           *data.SubmissionsFeed
	feedErr        error
	pages          map[string][]data.Filing
	documents      map[string]string
	documentErr    error
	calls          int
	requestedPages []string
}

func (filings *fakeFilings) Submissions(ctx context.Context, cik int64) (*data.SubmissionsFeed, error) {
	filings.calls++
	return filings.feed, filings.feedErr
}

func (filings *fakeFilings) ArchivePage(ctx context.Context, name string) ([]data.Filing, error) {
	filings.calls++
	filings.requestedPages = append(filings.requestedPages, name)
	return filings.pages[name], nil
}

func (filings *fakeFilings) Document(ctx context.Context, cik int64, filing data.Filing) (string, error) {
	filings.calls++
	if filings.documentErr != nil {
		return "", filings.documentErr
	}
	return filings.documents[filing.AccessionNumber], nil
}

func (filings *fakeFilings) ResolveFilingURL(ctx context.Context, cik int64, filing data.Filing) string {
	filings.calls++
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%d/%s/%s", cik, filing.AccessionNoDashes(), filing.PrimaryDocument)
}

type fakeFacts struct {
	facts     *data.StructuredFacts
	err       error
	requested []string
}

func (facts *fakeFacts) StructuredFacts(ctx context.Context, filingURL string) (*data.StructuredFacts, error) {
	facts.requested = append(facts.requested, filingURL)
	return facts.facts, facts.err
}

var _ = Describe("Pipeline", func() {
	var (
		ctx       context.Context
		filings   *fakeFilings
		facts     *fakeFacts
		myPipline *pipeline.Pipeline
	)

	BeforeEach(func() {
		ctx = context.Background()
		filings = &fakeFilings{
			feed: &data.SubmissionsFeed{
				CIK:  "320193",
				Name: "Apple Inc.",
				Recent: []data.Filing{
					{Type: data.QuarterlyReport, FilingDate: "2024-08-02", AccessionNumber: "0000320193-24-000081", PrimaryDocument: "q.htm", Period: "2024-06-29"},
					{Type: data.AnnualReport, FilingDate: "2023-11-03", AccessionNumber: "0000320193-23-000106", PrimaryDocument: "k.htm", Period: "2023-09-30"},
				},
				Archives: []data.ArchivePage{{Name: "CIK0000320193-submissions-001.json"}},
			},
			documents: map[string]string{
				"0000320193-24-000081": "(In millions)\nNet cash provided by operating activities 28,858\nPayments for acquisition of property, plant and equipment (2,151)\n",
				"0000320193-23-000106": "Net cash generated by operating activities 110,543\nCapital expenditures 10,959\n",
			},
		}
		facts = &fakeFacts{
			facts: &data.StructuredFacts{
				Sections: []data.Section{{
					Name: "StatementsOfIncome",
					Concepts: []data.Concept{{
						Name:  "NetIncomeLoss",
						Facts: []data.RawFact{{Value: "96995000000", StartDate: "2022-09-25", EndDate: "2023-09-30"}},
					}},
				}},
			},
		}

		myPipline = &pipeline.Pipeline{
			Directory: directory.New([]data.Company{{Ticker: "AAPL", Title: "Apple Inc.", CIK: 320193}}),
			Filings:   filings,
			Facts:     facts,
		}
	})

	Context("an unknown ticker", func() {
		It("reports not found without retrieving anything", func() {
			quarterly := myPipline.QuarterlyFreeCashFlow(ctx, "ZZZZ")
			Expect(quarterly.Result.Status).To(Equal(data.StatusNotFound))
			Expect(quarterly.Result.Reason).To(Equal("Ticker not found."))

			annual := myPipline.AnnualFreeCashFlow(ctx, "ZZZZ", 2024)
			Expect(annual.Result.Status).To(Equal(data.StatusNotFound))

			income := myPipline.IncomeStatement(ctx, "ZZZZ")
			Expect(income.Result.Status).To(Equal(data.StatusNotFound))
			Expect(income.Statement.Empty()).To(BeTrue())

			Expect(filings.calls).To(BeZero())
			Expect(facts.requested).To(BeEmpty())
		})
	})

	Context("lookup", func() {
		It("finds a company ignoring case", func() {
			company, result := myPipline.Lookup("aapl")
			Expect(result.OK()).To(BeTrue())
			Expect(company.CIK).To(Equal(int64(320193)))
		})
	})

	Context("quarterly free cash flow", func() {
		It("computes and scales free cash flow from the latest 10-Q", func() {
			report := myPipline.QuarterlyFreeCashFlow(ctx, "aapl")
			Expect(report.Result.OK()).To(BeTrue())
			Expect(report.Ticker).To(Equal("AAPL"))
			Expect(report.Filing.AccessionNumber).To(Equal("0000320193-24-000081"))
			Expect(report.Result.Value).To(Equal(26707.0))
			Expect(report.Scale.Source).To(Equal(data.ScaleExplicit))
			Expect(report.Absolute).To(Equal(26_707_000_000.0))
			Expect(report.Display.Decorated).To(Equal("$26.7 B"))
			Expect(report.PeriodLabel()).To(Equal("2024-06-29"))
		})

		It("labels a missing period as the current quarter", func() {
			filings.feed.Recent[0].Period = ""
			report := myPipline.QuarterlyFreeCashFlow(ctx, "AAPL")
			Expect(report.PeriodLabel()).To(Equal("current quarter"))
		})

		It("reports a missing 10-Q as not found", func() {
			filings.feed.Recent = filings.feed.Recent[1:]
			report := myPipline.QuarterlyFreeCashFlow(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusNotFound))
			Expect(report.HasFiling).To(BeFalse())
		})

		It("reports a failed submissions request as a retrieval failure", func() {
			filings.feedErr = fmt.Errorf("%w: 503", data.ErrRetrieval)
			report := myPipline.QuarterlyFreeCashFlow(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusRetrievalFailure))
		})

		It("reports a failed document request as a retrieval failure", func() {
			filings.documentErr = errors.New("connection reset")
			report := myPipline.QuarterlyFreeCashFlow(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusRetrievalFailure))
			Expect(report.Result.Reason).To(Equal("Unable to fetch document text."))
			Expect(report.HasFiling).To(BeTrue())
		})

		It("propagates extraction failures without scaling", func() {
			filings.documents["0000320193-24-000081"] = "Risk factors only."
			report := myPipline.QuarterlyFreeCashFlow(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusExtractionFailure))
			Expect(report.Result.Reason).To(Equal("free cash flow not found"))
			Expect(report.Absolute).To(BeZero())
		})
	})

	Context("annual free cash flow", func() {
		It("uses the 10-K for the year and tags a defaulted scale", func() {
			report := myPipline.AnnualFreeCashFlow(ctx, "AAPL", 2023)
			Expect(report.Result.OK()).To(BeTrue())
			Expect(report.Filing.AccessionNumber).To(Equal("0000320193-23-000106"))
			Expect(report.Result.Value).To(Equal(99584.0))
			Expect(report.Scale.Source).To(Equal(data.ScaleDefault))
			Expect(report.Absolute).To(Equal(99_584_000_000.0))
		})

		It("falls back to the latest 10-K after searching archive pages", func() {
			report := myPipline.AnnualFreeCashFlow(ctx, "AAPL", 1999)
			Expect(report.Result.OK()).To(BeTrue())
			Expect(report.Filing.AccessionNumber).To(Equal("0000320193-23-000106"))
			Expect(report.PeriodLabel()).To(Equal("2023-09-30"))
			Expect(filings.requestedPages).To(Equal([]string{"CIK0000320193-submissions-001.json"}))
		})

		It("labels a missing period with the year", func() {
			filings.feed.Recent[1].Period = ""
			report := myPipline.AnnualFreeCashFlow(ctx, "AAPL", 2023)
			Expect(report.PeriodLabel()).To(Equal("2023"))
		})
	})

	Context("income statement", func() {
		It("assembles the statement from the latest 10-K", func() {
			report := myPipline.IncomeStatement(ctx, "AAPL")
			Expect(report.Result.OK()).To(BeTrue())
			Expect(report.Statement.Rows).To(HaveLen(1))
			Expect(report.Statement.Rows[0].Concept).To(Equal("Net Income Loss"))
			Expect(facts.requested).To(Equal([]string{"https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/k.htm"}))
		})

		It("reports a missing section as not found", func() {
			facts.facts = &data.StructuredFacts{Sections: []data.Section{{Name: "BalanceSheets"}}}
			report := myPipline.IncomeStatement(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusNotFound))
			Expect(report.Result.Reason).To(Equal("No income statement data available."))
		})

		It("reports a failed XBRL request as a retrieval failure", func() {
			facts.err = fmt.Errorf("%w: sec-api: Invalid API token", data.ErrRetrieval)
			report := myPipline.IncomeStatement(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusRetrievalFailure))
		})

		It("requires a fact source", func() {
			myPipline.Facts = nil
			report := myPipline.IncomeStatement(ctx, "AAPL")
			Expect(report.Result.Status).To(Equal(data.StatusRetrievalFailure))
		})
	})
})
