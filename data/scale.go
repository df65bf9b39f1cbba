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

type ScaleSource int

const (
	// ScaleDefault means no cue was found in the text
	ScaleDefault ScaleSource = iota
	// ScaleExplicit means a phrase such as "in millions" was found
	ScaleExplicit
	// ScaleProximity means a table or data heading mentioned the unit
	ScaleProximity
)

func (source ScaleSource) String() string {
	switch source {
	case ScaleExplicit:
		return "explicit"
	case ScaleProximity:
		return "proximity"
	default:
		return "default"
	}
}

// CurrencyScale is the reporting unit of a filing
type CurrencyScale struct {
	Multiplier float64
	Label      string
	Source     ScaleSource
}

// Detected reports whether the scale was read from the text rather than defaulted
func (scale CurrencyScale) Detected() bool {
	return scale.Source != ScaleDefault
}

var (
	Thousands = CurrencyScale{Multiplier: 1e3, Label: "thousands"}
	Millions  = CurrencyScale{Multiplier: 1e6, Label: "millions"}
	Billions  = CurrencyScale{Multiplier: 1e9, Label: "billions"}
)

// WithSource returns a copy of the scale tagged with where it came from
func (scale CurrencyScale) WithSource(source ScaleSource) CurrencyScale {
	scale.Source = source
	return scale
}
