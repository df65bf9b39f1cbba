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
package query_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/edgarfacts/query"
)

var _ = Describe("Parse", func() {
	DescribeTable("commands",
		func(input string, expected query.Query) {
			parsed, err := query.Parse(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(expected))
		},
		Entry("quit", "quit", query.Query{Kind: query.KindQuit}),
		Entry("quit with whitespace", "  QUIT ", query.Query{Kind: query.KindQuit}),
		Entry("quarterly", "AAPL_FCF_QRT", query.Query{Kind: query.KindQuarterly, Ticker: "AAPL"}),
		Entry("quarterly lower case", "aapl_fcf_qrt", query.Query{Kind: query.KindQuarterly, Ticker: "AAPL"}),
		Entry("annual two digit year", "TSLA_FCF_YR_24", query.Query{Kind: query.KindAnnual, Ticker: "TSLA", Year: 2024}),
		Entry("annual four digit year", "tsla_fcf_yr_2019", query.Query{Kind: query.KindAnnual, Ticker: "TSLA", Year: 2019}),
		Entry("income", "MSFT INC", query.Query{Kind: query.KindIncome, Ticker: "MSFT"}),
		Entry("income long form", "msft income", query.Query{Kind: query.KindIncome, Ticker: "MSFT"}),
		Entry("lookup", "nvda", query.Query{Kind: query.KindLookup, Ticker: "NVDA"}),
	)

	It("rejects a non-numeric year", func() {
		parsed, err := query.Parse("TSLA_FCF_YR_XX")
		Expect(err).To(MatchError(query.ErrInvalidYear))
		Expect(parsed.Ticker).To(Equal("TSLA"))
	})
})
