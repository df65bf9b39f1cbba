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
package query

import (
	"errors"
	"strings"

	"github.com/penny-vault/edgarfacts/locator"
)

var ErrInvalidYear = errors.New("invalid year format")

type Kind int

const (
	KindLookup Kind = iota
	KindQuarterly
	KindAnnual
	KindIncome
	KindQuit
)

// Query is one parsed line of interactive input
type Query struct {
	Kind   Kind
	Ticker string
	Year   int
}

// Parse interprets a line of interactive input. Recognized forms are
// AAPL_FCF_QRT, TSLA_FCF_YR_24, MSFT INC and quit; anything else is treated
// as a ticker to look up.
func Parse(input string) (Query, error) {
	line := strings.ToLower(strings.TrimSpace(input))

	switch {
	case line == "quit":
		return Query{Kind: KindQuit}, nil

	case strings.HasSuffix(line, "_fcf_qrt"):
		return Query{
			Kind:   KindQuarterly,
			Ticker: strings.ToUpper(strings.Split(line, "_")[0]),
		}, nil

	case strings.Contains(line, "_fcf_yr_"):
		parts := strings.Split(line, "_")
		query := Query{
			Kind:   KindAnnual,
			Ticker: strings.ToUpper(parts[0]),
		}

		year, err := locator.ExpandYear(parts[len(parts)-1])
		if err != nil {
			return query, ErrInvalidYear
		}
		query.Year = year

		return query, nil

	case strings.Contains(line, " inc"), strings.Contains(line, " income"):
		return Query{
			Kind:   KindIncome,
			Ticker: strings.ToUpper(strings.Fields(line)[0]),
		}, nil

	default:
		return Query{
			Kind:   KindLookup,
			Ticker: strings.ToUpper(line),
		}, nil
	}
}
