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
package scale

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/penny-vault/edgarfacts/data"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var magnitudes = []data.CurrencyScale{data.Billions, data.Millions, data.Thousands}

var explicitPrefixes = []string{"in", "expressed in", "amounts in", "presented in", "reported in"}

var proximityRegex = map[string]*regexp.Regexp{
	data.Billions.Label:  regexp.MustCompile(`(?is)\b(table|data).{0,50}(in billions|billions of)\b`),
	data.Millions.Label:  regexp.MustCompile(`(?is)\b(table|data).{0,50}(in millions|millions of)\b`),
	data.Thousands.Label: regexp.MustCompile(`(?is)\b(table|data).{0,50}(in thousands|thousands of)\b`),
}

// Infer determines the unit amounts in the text are reported in. Explicit
// phrases such as "in millions" are preferred over a table or data heading
// that mentions a unit. When neither is present the scale defaults to
// millions and is tagged data.ScaleDefault.
func Infer(text string) data.CurrencyScale {
	lower := strings.ToLower(text)

	for _, magnitude := range magnitudes {
		for _, prefix := range explicitPrefixes {
			if strings.Contains(lower, prefix+" "+magnitude.Label) {
				return magnitude.WithSource(data.ScaleExplicit)
			}
		}
	}

	for _, magnitude := range magnitudes {
		if proximityRegex[magnitude.Label].MatchString(lower) {
			return magnitude.WithSource(data.ScaleProximity)
		}
	}

	return data.Millions.WithSource(data.ScaleDefault)
}

// Apply converts a raw reported value into an absolute currency amount
func Apply(raw float64, scale data.CurrencyScale) float64 {
	return raw * scale.Multiplier
}

// Display is an absolute currency amount prepared for presentation
type Display struct {
	Decorated string // e.g. $2.5 B
	Value     string // e.g. 2.5
	Unit      string // T, B, M, K or empty for plain dollars
	Plain     string // e.g. 2,500,000,000.00 dollars
}

var units = []struct {
	threshold float64
	unit      string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// Format chooses the largest unit the magnitude of value qualifies for
func Format(value float64) Display {
	p := message.NewPrinter(language.English)
	display := Display{
		Plain: p.Sprintf("%.2f dollars", value),
	}

	magnitude := math.Abs(value)
	for _, unit := range units {
		if magnitude >= unit.threshold {
			display.Unit = unit.unit
			display.Value = fmt.Sprintf("%.1f", value/unit.threshold)
			display.Decorated = fmt.Sprintf("$%s %s", display.Value, display.Unit)
			return display
		}
	}

	display.Value = fmt.Sprintf("%.2f", value)
	display.Decorated = "$" + display.Value

	return display
}
