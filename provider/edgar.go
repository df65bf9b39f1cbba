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
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/penny-vault/edgarfacts/data"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	EdgarWWWURL  = "https://www.sec.gov"
	EdgarDataURL = "https://data.sec.gov"

	DefaultRateLimit = 10.0
	DefaultTimeout   = 30 * time.Second
)

var (
	ErrInvalidStatusCode = errors.New("invalid status code received")
	ErrMissingUserAgent  = errors.New("SEC requires a User-Agent identifying the requester")
)

// Edgar retrieves company directories, filing histories and filing documents
// from SEC EDGAR. Every request carries the configured User-Agent and is
// subject to the rate limit.
type Edgar struct {
	client  *resty.Client
	limiter *rate.Limiter
	wwwURL  string
	dataURL string
}

type EdgarOption func(*Edgar)

// WithBaseURLs overrides the www.sec.gov and data.sec.gov hosts
func WithBaseURLs(www, dataHost string) EdgarOption {
	return func(edgar *Edgar) {
		edgar.wwwURL = strings.TrimSuffix(www, "/")
		edgar.dataURL = strings.TrimSuffix(dataHost, "/")
	}
}

// WithRateLimit sets the maximum number of requests per second
func WithRateLimit(perSecond float64) EdgarOption {
	return func(edgar *Edgar) {
		if perSecond <= 0 {
			perSecond = DefaultRateLimit
		}
		edgar.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithTimeout(timeout time.Duration) EdgarOption {
	return func(edgar *Edgar) {
		if timeout > 0 {
			edgar.client.SetTimeout(timeout)
		}
	}
}

func NewEdgar(userAgent string, opts ...EdgarOption) *Edgar {
	edgar := &Edgar{
		client: resty.New().
			SetHeader("User-Agent", userAgent).
			SetTimeout(DefaultTimeout),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		wwwURL:  EdgarWWWURL,
		dataURL: EdgarDataURL,
	}

	for _, opt := range opts {
		opt(edgar)
	}

	return edgar
}

// Private interface

type edgarSubmissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent data.FilingColumns  `json:"recent"`
		Files  []data.ArchivePage `json:"files"`
	} `json:"filings"`
}

// Tickers downloads the SEC company directory. Records are returned in the
// order of the numeric keys of the source document.
func (edgar *Edgar) Tickers(ctx context.Context) ([]data.Company, error) {
	body, err := edgar.get(ctx, edgar.wwwURL+"/files/company_tickers.json")
	if err != nil {
		return nil, err
	}

	entries := make(map[string]data.Company)
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: could not decode company tickers: %w", data.ErrRetrieval, err)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	companies := make([]data.Company, 0, len(keys))
	for _, key := range keys {
		companies = append(companies, entries[key])
	}

	zerolog.Ctx(ctx).Debug().Int("NumCompanies", len(companies)).Msg("downloaded SEC company directory")

	return companies, nil
}

// Submissions downloads the filing history of a company
func (edgar *Edgar) Submissions(ctx context.Context, cik int64) (*data.SubmissionsFeed, error) {
	url := fmt.Sprintf("%s/submissions/CIK%010d.json", edgar.dataURL, cik)
	body, err := edgar.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var submissions edgarSubmissions
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, fmt.Errorf("%w: could not decode submissions: %w", data.ErrRetrieval, err)
	}

	feed := &data.SubmissionsFeed{
		CIK:      submissions.CIK,
		Name:     submissions.Name,
		Recent:   submissions.Filings.Recent.Normalize(),
		Archives: submissions.Filings.Files,
	}

	zerolog.Ctx(ctx).Debug().Int64("CIK", cik).Int("NumRecent", len(feed.Recent)).Int("NumArchives", len(feed.Archives)).Msg("downloaded submissions")

	return feed, nil
}

// ArchivePage downloads an older page of a company's filing history. Archive
// pages carry their columns at the top level of the document.
func (edgar *Edgar) ArchivePage(ctx context.Context, name string) ([]data.Filing, error) {
	body, err := edgar.get(ctx, fmt.Sprintf("%s/submissions/%s", edgar.dataURL, name))
	if err != nil {
		return nil, err
	}

	var columns data.FilingColumns
	if err := json.Unmarshal(body, &columns); err != nil {
		return nil, fmt.Errorf("%w: could not decode archive page %s: %w", data.ErrRetrieval, name, err)
	}

	return columns.Normalize(), nil
}

// FilingURL returns the archive URL of the filing's primary document
func (edgar *Edgar) FilingURL(cik int64, filing data.Filing) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%d/%s/%s", edgar.wwwURL, cik, filing.AccessionNoDashes(), filing.PrimaryDocument)
}

// AltFilingURL returns the inline XBRL viewer URL of the filing's primary
// document, which some newer filings are only reachable through
func (edgar *Edgar) AltFilingURL(cik int64, filing data.Filing) string {
	return fmt.Sprintf("%s/ix?doc=/Archives/edgar/data/%d/%s/%s", edgar.wwwURL, cik, filing.AccessionNoDashes(), filing.PrimaryDocument)
}

// Document downloads the filing's primary document and returns it as plain
// text. When the archive URL fails the inline viewer URL is tried once.
func (edgar *Edgar) Document(ctx context.Context, cik int64, filing data.Filing) (string, error) {
	logger := zerolog.Ctx(ctx)

	primary := edgar.FilingURL(cik, filing)
	resp, err := edgar.request(ctx, primary)
	if err == nil {
		return DocumentText(resp.Header().Get("Content-Type"), resp.String())
	}

	logger.Warn().Err(err).Str("URL", primary).Msg("could not fetch filing document, trying alternate url")

	alt := edgar.AltFilingURL(cik, filing)
	resp, err = edgar.request(ctx, alt)
	if err != nil {
		logger.Error().Err(err).Str("URL", alt).Msg("could not fetch filing document")
		return "", err
	}

	return HTMLText(resp.String())
}

// ResolveFilingURL returns the archive URL of the filing unless it does not
// answer a HEAD request and the inline viewer URL does
func (edgar *Edgar) ResolveFilingURL(ctx context.Context, cik int64, filing data.Filing) string {
	primary := edgar.FilingURL(cik, filing)
	if edgar.head(ctx, primary) == 200 {
		return primary
	}

	alt := edgar.AltFilingURL(cik, filing)
	if edgar.head(ctx, alt) == 200 {
		zerolog.Ctx(ctx).Debug().Str("URL", alt).Msg("using alternate filing url")
		return alt
	}

	return primary
}

func (edgar *Edgar) head(ctx context.Context, url string) int {
	if err := edgar.limiter.Wait(ctx); err != nil {
		return 0
	}

	resp, err := edgar.client.R().SetContext(ctx).Head(url)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("URL", url).Msg("HEAD request failed")
		return 0
	}

	return resp.StatusCode()
}

func (edgar *Edgar) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := edgar.request(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (edgar *Edgar) request(ctx context.Context, url string) (*resty.Response, error) {
	if err := edgar.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait failed: %w", data.ErrRetrieval, err)
	}

	resp, err := edgar.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", data.ErrRetrieval, err)
	}

	if resp.StatusCode() >= 300 {
		zerolog.Ctx(ctx).Debug().Int("StatusCode", resp.StatusCode()).Str("URL", url).Msg("EDGAR returned an invalid HTTP response")
		return nil, fmt.Errorf("%w: %w: %d %s", data.ErrRetrieval, ErrInvalidStatusCode, resp.StatusCode(), url)
	}

	return resp, nil
}
