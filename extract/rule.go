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
	"fmt"
	"regexp"
	"strings"
)

// unsigned matches comma grouped thousands with an optional fraction
const unsigned = `\d{1,3}(?:,\d{3})*(?:\.\d+)?`

const number = `-?` + unsigned

// amount matches either a bare number or an accounting style negative such
// as (1,234) or $(1,234)
const amount = `(?:\(\s*\$?\s*(` + number + `)\s*\)|(` + number + `))`

// negativeAmount only accepts explicitly negative values
const negativeAmount = `(?:\(\s*\$?\s*(` + number + `)\s*\)|(-` + unsigned + `))`

// Rule recognizes a single financial quantity in filing text
type Rule interface {
	Name() string
	TryMatch(text string) (string, bool)
}

type regexRule struct {
	name    string
	pattern *regexp.Regexp
}

func (rule *regexRule) Name() string {
	return rule.name
}

func (rule *regexRule) TryMatch(text string) (string, bool) {
	match := rule.pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return capturedAmount(match)
}

func (rule *regexRule) String() string {
	return fmt.Sprintf("%s: %s", rule.name, rule.pattern)
}

// LabelRule matches any of the labels, case-insensitive, followed by the first
// number after it. Labels are regular expression fragments.
func LabelRule(name string, labels ...string) Rule {
	expr := `(?i)(?:` + strings.Join(labels, "|") + `)[^\d\-]*?` + amount
	return &regexRule{
		name:    name,
		pattern: regexp.MustCompile(expr),
	}
}

// ProximityRule matches a number that follows cue within window characters
// containing no digits or markup. With negativeOnly set only an explicitly
// negative number is accepted.
func ProximityRule(name, cue string, window int, negativeOnly bool) Rule {
	capture := amount
	if negativeOnly {
		capture = negativeAmount
	}

	expr := fmt.Sprintf(`(?i)(?:%s)[^<>\d\-]{1,%d}?%s`, cue, window, capture)
	return &regexRule{
		name:    name,
		pattern: regexp.MustCompile(expr),
	}
}

var lineNumberRegex = regexp.MustCompile(amount)

// capturedAmount returns the number from a match of amount, converting a
// parenthesised value to a negative one
func capturedAmount(match []string) (string, bool) {
	if len(match) < 3 {
		return "", false
	}

	paren, bare := match[len(match)-2], match[len(match)-1]
	switch {
	case paren != "":
		if strings.HasPrefix(paren, "-") {
			return paren, true
		}
		return "-" + paren, true
	case bare != "":
		return bare, true
	default:
		return "", false
	}
}
