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
package data

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Company is a single record of the SEC ticker directory
type Company struct {
	Ticker string `json:"ticker" csv:"ticker"`
	Title  string `json:"title" csv:"title"`
	CIK    int64  `json:"cik_str" csv:"cik"`
}

// PaddedCIK returns the CIK zero-padded to the 10 digits EDGAR uses in file names
func (company Company) PaddedCIK() string {
	return fmt.Sprintf("%010d", company.CIK)
}

// NormalizeTicker returns the key used for case-insensitive ticker matches
func NormalizeTicker(ticker string) string {
	return strings.ToLower(strings.TrimSpace(ticker))
}

func (company Company) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", company.Ticker)
	e.Str("Title", company.Title)
	e.Int64("CIK", company.CIK)
}
