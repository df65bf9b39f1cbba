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
package provider_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/penny-vault/edgarfacts/provider"
)

const submissionsJSON = `{
  "cik": "320193",
  "name": "Apple Inc.",
  "filings": {
    "recent": {
      "accessionNumber": ["0000320193-24-000081", "0000320193-23-000106"],
      "filingDate": ["2024-08-02", "2023-11-03"],
      "reportDate": ["2024-06-29"],
      "form": ["10-Q", "10-K"],
      "primaryDocument": ["aapl-20240629.htm", "aapl-20230930.htm"]
    },
    "files": [
      {"name": "CIK0000320193-submissions-001.json", "filingCount": 1, "filingFrom": "1994-01-26", "filingTo": "2015-10-28"}
    ]
  }
}`

const archiveJSON = `{
  "accessionNumber": ["0001193125-15-356351"],
  "filingDate": ["2015-10-28"],
  "periodOfReport": ["2015-09-26"],
  "form": ["10-K"],
  "primaryDocument": ["d17062d10k.htm"]
}`

const filingHTML = `<html><head><style>p { color: red }</style></head><body>
<p>Net cash provided by operating activities</p>
<table><tr><td>100</td></tr><tr><td>Capital expenditures</td><td>(30)</td></tr></table>
<script>var secret = 1;</script>
</body></html>`

var _ = Describe("Edgar", func() {
	var (
		ctx        context.Context
		server     *httptest.Server
		edgar      *provider.Edgar
		userAgents []string
		primaryOK  bool
	)

	quarterly := data.Filing{
		Type:            data.QuarterlyReport,
		FilingDate:      "2024-08-02",
		AccessionNumber: "0000320193-24-000081",
		PrimaryDocument: "aapl-20240629.htm",
		Period:          "2024-06-29",
	}

	BeforeEach(func() {
		ctx = context.Background()
		userAgents = nil
		primaryOK = true

		mux := http.NewServeMux()
		mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"10":{"cik_str":1318605,"ticker":"TSLA","title":"Tesla, Inc."},
				"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."},
				"2":{"cik_str":789019,"ticker":"MSFT","title":"MICROSOFT CORP"}}`)
		})
		mux.HandleFunc("/submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, submissionsJSON)
		})
		mux.HandleFunc("/submissions/CIK0000320193-submissions-001.json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, archiveJSON)
		})
		mux.HandleFunc("/Archives/edgar/data/320193/000032019324000081/aapl-20240629.htm", func(w http.ResponseWriter, r *http.Request) {
			if !primaryOK {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, filingHTML)
		})
		mux.HandleFunc("/ix", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("doc") != "/Archives/edgar/data/320193/000032019324000081/aapl-20240629.htm" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><body><div>Free cash flow</div><div>42</div></body></html>`)
		})

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgents = append(userAgents, r.UserAgent())
			mux.ServeHTTP(w, r)
		}))

		edgar = provider.NewEdgar("Test Runner test@example.com",
			provider.WithBaseURLs(server.URL, server.URL),
			provider.WithRateLimit(1000))
	})

	AfterEach(func() {
		server.Close()
	})

	It("returns the company directory in key order", func() {
		companies, err := edgar.Tickers(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(companies).To(HaveLen(3))
		Expect(companies[0].Ticker).To(Equal("AAPL"))
		Expect(companies[1].Ticker).To(Equal("MSFT"))
		Expect(companies[2].Ticker).To(Equal("TSLA"))
		Expect(companies[2].CIK).To(Equal(int64(1318605)))
	})

	It("sends the configured user agent", func() {
		_, err := edgar.Tickers(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(userAgents).To(ConsistOf("Test Runner test@example.com"))
	})

	It("normalizes submissions", func() {
		feed, err := edgar.Submissions(ctx, 320193)
		Expect(err).NotTo(HaveOccurred())
		Expect(feed.Name).To(Equal("Apple Inc."))
		Expect(feed.Recent).To(HaveLen(2))
		Expect(feed.Recent[0]).To(Equal(quarterly))
		Expect(feed.Recent[1].HasPeriod()).To(BeFalse())
		Expect(feed.Archives).To(HaveLen(1))
		Expect(feed.Archives[0].Name).To(Equal("CIK0000320193-submissions-001.json"))
	})

	It("reads archive pages", func() {
		filings, err := edgar.ArchivePage(ctx, "CIK0000320193-submissions-001.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(filings).To(HaveLen(1))
		Expect(filings[0].Type).To(Equal(data.AnnualReport))
		Expect(filings[0].Period).To(Equal("2015-09-26"))
	})

	It("reports missing submissions as a retrieval failure", func() {
		_, err := edgar.Submissions(ctx, 1)
		Expect(err).To(MatchError(data.ErrRetrieval))
		Expect(err).To(MatchError(provider.ErrInvalidStatusCode))
	})

	It("builds archive and viewer urls", func() {
		Expect(edgar.FilingURL(320193, quarterly)).To(Equal(server.URL + "/Archives/edgar/data/320193/000032019324000081/aapl-20240629.htm"))
		Expect(edgar.AltFilingURL(320193, quarterly)).To(Equal(server.URL + "/ix?doc=/Archives/edgar/data/320193/000032019324000081/aapl-20240629.htm"))
	})

	It("converts html documents to text lines", func() {
		text, err := edgar.Document(ctx, 320193, quarterly)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(ContainSubstring("Net cash provided by operating activities\n100"))
		Expect(text).To(ContainSubstring("Capital expenditures (30)"))
		Expect(text).NotTo(ContainSubstring("secret"))
		Expect(text).NotTo(ContainSubstring("color"))
	})

	It("falls back to the viewer url once", func() {
		primaryOK = false
		text, err := edgar.Document(ctx, 320193, quarterly)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Free cash flow\n42"))
	})

	It("fails when both urls fail", func() {
		_, err := edgar.Document(ctx, 320193, data.Filing{AccessionNumber: "0-0-0", PrimaryDocument: "missing.htm"})
		Expect(err).To(MatchError(data.ErrRetrieval))
	})

	It("resolves the filing url with HEAD requests", func() {
		Expect(edgar.ResolveFilingURL(ctx, 320193, quarterly)).To(Equal(edgar.FilingURL(320193, quarterly)))

		primaryOK = false
		Expect(edgar.ResolveFilingURL(ctx, 320193, quarterly)).To(Equal(edgar.AltFilingURL(320193, quarterly)))

		missing := data.Filing{AccessionNumber: "0-0-0", PrimaryDocument: "missing.htm"}
		Expect(edgar.ResolveFilingURL(ctx, 320193, missing)).To(Equal(edgar.FilingURL(320193, missing)))
	})
})

var _ = Describe("DocumentText", func() {
	It("returns unknown content types unchanged", func() {
		text, err := provider.DocumentText("text/plain", "Net cash 5 <b>")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Net cash 5 <b>"))
	})

	It("strips xml documents", func() {
		text, err := provider.DocumentText("", `<?xml version="1.0"?><xbrl><context>FY</context><value>42</value></xbrl>`)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("FY 42"))
	})
})
