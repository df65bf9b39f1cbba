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
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/penny-vault/edgarfacts/data"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "tr": true, "br": true, "li": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// DocumentText converts a filing document to plain text based on its content
// type. HTML and XML are stripped of markup; anything else is returned as is.
func DocumentText(contentType, body string) (string, error) {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "text/html"):
		return HTMLText(body)
	case strings.Contains(contentType, "application/xml"), strings.HasPrefix(body, "<?xml"):
		return HTMLText(body)
	default:
		return body, nil
	}
}

// HTMLText returns the text content of an HTML or XML document. Text nodes
// are separated by a single space and block level elements end the current
// line.
func HTMLText(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse document: %w", data.ErrRetrieval, err)
	}

	doc.Find("script, style").Remove()

	builder := &textBuilder{}
	builder.walk(doc.Selection)

	return builder.String(), nil
}

type textBuilder struct {
	lines []string
	words []string
}

func (builder *textBuilder) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(i int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch name {
		case "#text":
			if text := strings.Join(strings.Fields(child.Text()), " "); text != "" {
				builder.words = append(builder.words, text)
			}
		case "#comment":
		default:
			builder.walk(child)
			if blockElements[name] {
				builder.endLine()
			}
		}
	})
}

func (builder *textBuilder) endLine() {
	if len(builder.words) == 0 {
		return
	}
	builder.lines = append(builder.lines, strings.Join(builder.words, " "))
	builder.words = builder.words[:0]
}

func (builder *textBuilder) String() string {
	builder.endLine()
	return strings.Join(builder.lines, "\n")
}
