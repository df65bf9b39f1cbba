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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrRetrieval  = errors.New("retrieval failed")
	ErrExtraction = errors.New("no pattern matched")
	ErrConversion = errors.New("value is not numeric")
)

// ExtractedMetric is a numeric string recovered from filing text along with
// the rule that found it
type ExtractedMetric struct {
	Raw    string
	Source string
}

// Amount converts the raw string, e.g. "-1,234.5", to a number
func (metric ExtractedMetric) Amount() (float64, error) {
	return ParseAmount(metric.Raw)
}

// ParseAmount converts a comma grouped numeric string to a float
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrConversion, raw)
	}
	return val, nil
}

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusRetrievalFailure
	StatusExtractionFailure
	StatusConversionFailure
)

func (status Status) String() string {
	switch status {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusRetrievalFailure:
		return "retrieval failure"
	case StatusExtractionFailure:
		return "extraction failure"
	case StatusConversionFailure:
		return "conversion failure"
	default:
		return fmt.Sprintf("status(%d)", int(status))
	}
}

// Result is either a value with the strategy that produced it or a failure
// status with a reason. Callers branch on Status, never on Value.
type Result struct {
	Status Status
	Value  float64
	Reason string
	Source string
}

func Success(value float64, source string) Result {
	return Result{Status: StatusOK, Value: value, Source: source}
}

func Failure(status Status, reason string) Result {
	return Result{Status: status, Reason: reason}
}

// OK reports whether the result carries a value
func (result Result) OK() bool {
	return result.Status == StatusOK
}

// Err returns nil for a successful result and the matching sentinel error,
// annotated with the reason, otherwise
func (result Result) Err() error {
	var sentinel error
	switch result.Status {
	case StatusOK:
		return nil
	case StatusNotFound:
		sentinel = ErrNotFound
	case StatusRetrievalFailure:
		sentinel = ErrRetrieval
	case StatusConversionFailure:
		sentinel = ErrConversion
	default:
		sentinel = ErrExtraction
	}

	if result.Reason == "" {
		return sentinel
	}

	return fmt.Errorf("%w: %s", sentinel, result.Reason)
}

// StatusFromError maps an error returned by a collaborator onto a result status
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrConversion):
		return StatusConversionFailure
	case errors.Is(err, ErrExtraction):
		return StatusExtractionFailure
	default:
		return StatusRetrievalFailure
	}
}
