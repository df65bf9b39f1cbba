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
package extract

import "regexp"

var OperatingCashFlow = RuleSet{
	Name: "operating-cash-flow",
	Rules: []Rule{
		LabelRule("ocf-statement-line",
			`Net cash (?:provided|generated|from) (?:by|from)? operating activities`,
			`Cash flows? (?:provided|generated|from)? (?:by)? operating activities`,
			`Operating Cash Flow`),
		LabelRule("ocf-cash-from-operations", `Cash from operations`),
		LabelRule("ocf-operating", `Operating (?:cash flow|activities)`),
		LabelRule("ocf-net-cash-flow", `Net cash flow from operating activities`),
		LabelRule("ocf-cash-flows-from", `Cash flows from operating activities`),
		LabelRule("ocf-net-cash-from", `Net cash from operating activities`),
		ProximityRule("ocf-proximity", `operating|operations`, 40, false),
	},
	LineCue: regexp.MustCompile(`(?i)operating activities`),
}

// CapitalExpenditure values are returned with the sign found in the text.
// Callers treat positive values as outflows.
var CapitalExpenditure = RuleSet{
	Name: "capital-expenditure",
	Rules: []Rule{
		LabelRule("capex-statement-line",
			`Capital Expenditures`,
			`Purchases of property, plant and equipment`,
			`Capital spending`,
			`Acquisition of property, plant and equipment`),
		LabelRule("capex-abbreviation", `CapEx`, `Cap Ex`, `Capital expenditure`),
		LabelRule("capex-property-equipment", `(?:Purchase|Purchases|Acquisition|Additions) of property and equipment`),
		LabelRule("capex-payments", `(?:Payments for|Investments in) property, plant and equipment`),
		LabelRule("capex-additions", `Additions to property, plant and equipment`),
		LabelRule("capex-ppe", `Additions to PP&E`),
		ProximityRule("capex-proximity", `property|equipment|capital`, 40, true),
	},
	LineCue: regexp.MustCompile(`(?i)(property|equipment|capital expenditure)`),
}

var FreeCashFlow = RuleSet{
	Name: "free-cash-flow",
	Rules: []Rule{
		LabelRule("fcf-label", `Free Cash Flow`),
		LabelRule("fcf-abbreviation", `FCF`),
		LabelRule("fcf-of", `free cash flow of `),
	},
}
