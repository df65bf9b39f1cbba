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
package locator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/penny-vault/edgarfacts/data"
	"github.com/rs/zerolog"
)

// PageFetcher retrieves an archived page of older filings referenced by a
// submissions feed
type PageFetcher interface {
	ArchivePage(ctx context.Context, name string) ([]data.Filing, error)
}

// Locate selects a filing of the requested type from the feed. A year of 0
// selects the most recent filing; otherwise the filing whose period or filing
// date falls in the year is returned, consulting the feed's archive pages when
// the recent window has no match. The first match wins.
func Locate(ctx context.Context, feed *data.SubmissionsFeed, filingType data.FilingType, year int, pages PageFetcher) (data.Filing, bool) {
	if year == 0 {
		return Latest(feed, filingType)
	}

	return ForYear(ctx, feed, filingType, year, pages)
}

// Latest returns the first filing of the requested type in feed order
func Latest(feed *data.SubmissionsFeed, filingType data.FilingType) (data.Filing, bool) {
	if feed == nil {
		return data.Filing{}, false
	}

	for _, filing := range feed.Recent {
		if filing.Type == filingType {
			return filing, true
		}
	}

	return data.Filing{}, false
}

// ForYear returns the first filing of the requested type whose period or
// filing date starts with the year. Archive pages that fail to load are
// treated as empty.
func ForYear(ctx context.Context, feed *data.SubmissionsFeed, filingType data.FilingType, year int, pages PageFetcher) (data.Filing, bool) {
	if feed == nil {
		return data.Filing{}, false
	}

	target := strconv.Itoa(year)
	if filing, ok := scanYear(feed.Recent, filingType, target); ok {
		return filing, true
	}

	if pages == nil {
		return data.Filing{}, false
	}

	logger := zerolog.Ctx(ctx)
	for _, page := range feed.Archives {
		filings, err := pages.ArchivePage(ctx, page.Name)
		if err != nil {
			logger.Warn().Err(err).Str("Page", page.Name).Msg("could not load archived filings page")
			continue
		}

		if filing, ok := scanYear(filings, filingType, target); ok {
			logger.Debug().Str("Page", page.Name).Object("Filing", filing).Msg("found filing in archive page")
			return filing, true
		}
	}

	return data.Filing{}, false
}

// ExpandYear converts a year from user input into a four digit year. Two
// digit years are assumed to be in the 2000s.
func ExpandYear(year string) (int, error) {
	year = strings.TrimSpace(year)
	if len(year) == 2 {
		year = "20" + year
	}

	val, err := strconv.Atoi(year)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("invalid year %q", year)
	}

	return val, nil
}

func scanYear(filings []data.Filing, filingType data.FilingType, year string) (data.Filing, bool) {
	for _, filing := range filings {
		if filing.Type != filingType {
			continue
		}

		// filing date is an approximation for companies whose fiscal year
		// does not align with the calendar
		if strings.HasPrefix(filing.Period, year) || strings.HasPrefix(filing.FilingDate, year) {
			return filing, true
		}
	}

	return data.Filing{}, false
}
