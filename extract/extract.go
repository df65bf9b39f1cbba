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

import (
	"regexp"
	"strings"

	"github.com/penny-vault/edgarfacts/data"
)

// RuleSet is an ordered list of rules for one financial quantity. Rules are
// listed from the most specific statement phrasing to the loosest cue and the
// first rule that matches wins.
type RuleSet struct {
	Name  string
	Rules []Rule

	// LineCue selects lines whose following line is scanned for a bare
	// number when no rule matches. Nil disables the line scan.
	LineCue *regexp.Regexp
}

// Extract returns the first value recognized by the rule set. The boolean is
// false when neither the rules nor the line scan find a number.
func Extract(text string, ruleSet RuleSet) (data.ExtractedMetric, bool) {
	for _, rule := range ruleSet.Rules {
		if raw, ok := rule.TryMatch(text); ok {
			return data.ExtractedMetric{Raw: raw, Source: rule.Name()}, true
		}
	}

	if ruleSet.LineCue == nil {
		return data.ExtractedMetric{}, false
	}

	lines := strings.Split(text, "\n")
	for idx := 0; idx+1 < len(lines); idx++ {
		if !ruleSet.LineCue.MatchString(lines[idx]) {
			continue
		}

		match := lineNumberRegex.FindStringSubmatch(lines[idx+1])
		if raw, ok := capturedAmount(match); ok {
			return data.ExtractedMetric{Raw: raw, Source: ruleSet.Name + "/next-line"}, true
		}
	}

	return data.ExtractedMetric{}, false
}

// WithRules returns a copy of the rule set with rules appended after the
// existing ones
func (ruleSet RuleSet) WithRules(rules ...Rule) RuleSet {
	combined := make([]Rule, 0, len(ruleSet.Rules)+len(rules))
	combined = append(combined, ruleSet.Rules...)
	combined = append(combined, rules...)
	ruleSet.Rules = combined
	return ruleSet
}

// Prepend returns a copy of the rule set with rules evaluated before the
// existing ones
func (ruleSet RuleSet) Prepend(rules ...Rule) RuleSet {
	combined := make([]Rule, 0, len(ruleSet.Rules)+len(rules))
	combined = append(combined, rules...)
	combined = append(combined, ruleSet.Rules...)
	ruleSet.Rules = combined
	return ruleSet
}
