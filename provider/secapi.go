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
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/penny-vault/edgarfacts/data"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const SecAPIURL = "https://api.sec-api.io"

// SecAPI converts XBRL filings to JSON through the sec-api.io service
type SecAPI struct {
	client  *resty.Client
	baseURL string
}

type SecAPIOption func(*SecAPI)

func WithSecAPIBaseURL(baseURL string) SecAPIOption {
	return func(api *SecAPI) {
		api.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewSecAPI(apiKey string, timeout time.Duration, opts ...SecAPIOption) *SecAPI {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	api := &SecAPI{
		client:  resty.New().SetQueryParam("token", apiKey).SetTimeout(timeout),
		baseURL: SecAPIURL,
	}

	for _, opt := range opts {
		opt(api)
	}

	return api
}

// StructuredFacts retrieves the XBRL facts of the filing at filingURL. Section
// and concept order follows the returned document.
func (api *SecAPI) StructuredFacts(ctx context.Context, filingURL string) (*data.StructuredFacts, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := api.client.R().
		SetContext(ctx).
		SetQueryParam("htm-url", filingURL).
		Get(api.baseURL + "/xbrl-to-json")
	if err != nil {
		logger.Error().Err(err).Str("FilingURL", filingURL).Msg("sec-api xbrl-to-json request failed")
		return nil, fmt.Errorf("%w: %w", data.ErrRetrieval, err)
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("FilingURL", filingURL).Msg("sec-api returned an invalid HTTP response")
		return nil, fmt.Errorf("%w: %w: %d", data.ErrRetrieval, ErrInvalidStatusCode, resp.StatusCode())
	}

	return ParseStructuredFacts(resp.String())
}

// ParseStructuredFacts walks an XBRL-to-JSON document. A document with a
// top-level error key is reported as a retrieval failure.
func ParseStructuredFacts(body string) (*data.StructuredFacts, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("%w: xbrl-to-json response is not valid json", data.ErrRetrieval)
	}

	result := gjson.Parse(body)
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: unexpected xbrl-to-json response", data.ErrRetrieval)
	}

	if apiErr := result.Get("error"); apiErr.Exists() {
		return nil, fmt.Errorf("%w: sec-api: %s", data.ErrRetrieval, apiErr.String())
	}

	facts := &data.StructuredFacts{}
	result.ForEach(func(sectionName, sectionBody gjson.Result) bool {
		if !sectionBody.IsObject() {
			return true
		}

		section := data.Section{Name: sectionName.String()}
		sectionBody.ForEach(func(conceptName, conceptBody gjson.Result) bool {
			concept := data.Concept{Name: conceptName.String()}
			switch {
			case conceptBody.IsArray():
				conceptBody.ForEach(func(_, fact gjson.Result) bool {
					if fact.IsObject() {
						concept.Facts = append(concept.Facts, rawFact(fact))
					}
					return true
				})
			case conceptBody.IsObject():
				concept.Facts = append(concept.Facts, rawFact(conceptBody))
			}

			section.Concepts = append(section.Concepts, concept)
			return true
		})

		facts.Sections = append(facts.Sections, section)
		return true
	})

	return facts, nil
}

func rawFact(fact gjson.Result) data.RawFact {
	return data.RawFact{
		Value:      fact.Get("value").String(),
		StartDate:  fact.Get("period.startDate").String(),
		EndDate:    fact.Get("period.endDate").String(),
		Instant:    fact.Get("period.instant").String(),
		HasSegment: fact.Get("segment").Exists(),
	}
}
