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
package directory

import (
	"fmt"
	"io"

	"github.com/alphadose/haxmap"
	"github.com/gocarina/gocsv"
	"github.com/penny-vault/edgarfacts/data"
	"github.com/rs/zerolog/log"
)

// Directory maps ticker symbols to the companies that file with the SEC
type Directory struct {
	companies []data.Company
	index     *haxmap.Map[string, int]
}

// New indexes companies by ticker. When a ticker appears more than once the
// first record wins.
func New(companies []data.Company) *Directory {
	directory := &Directory{
		companies: companies,
		index:     haxmap.New[string, int](),
	}

	for idx, company := range companies {
		ticker := data.NormalizeTicker(company.Ticker)
		if ticker == "" {
			continue
		}

		if _, ok := directory.index.Get(ticker); ok {
			continue
		}

		directory.index.Set(ticker, idx)
	}

	log.Debug().Int("NumCompanies", len(companies)).Msg("indexed company directory")

	return directory
}

// Find returns the company whose ticker matches, ignoring case
func (directory *Directory) Find(ticker string) (data.Company, bool) {
	if directory == nil {
		return data.Company{}, false
	}

	idx, ok := directory.index.Get(data.NormalizeTicker(ticker))
	if !ok {
		return data.Company{}, false
	}

	return directory.companies[idx], true
}

// Len returns the number of records in the directory
func (directory *Directory) Len() int {
	if directory == nil {
		return 0
	}
	return len(directory.companies)
}

// FromCSV reads a directory from CSV with the columns ticker, title and cik
func FromCSV(reader io.Reader) (*Directory, error) {
	records := []*data.Company{}
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return nil, fmt.Errorf("could not parse company directory csv: %w", err)
	}

	companies := make([]data.Company, 0, len(records))
	for _, record := range records {
		companies = append(companies, *record)
	}

	return New(companies), nil
}
