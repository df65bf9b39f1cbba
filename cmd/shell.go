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
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/penny-vault/edgarfacts/query"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shellPrompt = `Enter a ticker followed by a command:
  _FCF_QRT    free cash flow for the last quarter
  _FCF_YR_XX  free cash flow for a fiscal year
  INC         income statement
(i.e. AAPL_FCF_QRT, TSLA_FCF_YR_24, MSFT INC) or quit`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt for looking up tickers and metrics",
	Run: func(cmd *cobra.Command, args []string) {
		mySession := newSession()
		defer mySession.finish()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Loaded %d company tickers.\n", mySession.directory.Len())

		for {
			var line string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title(shellPrompt).
						Value(&line),
				),
			)

			if err := form.Run(); err != nil {
				if !errors.Is(err, huh.ErrUserAborted) {
					log.Error().Err(err).Msg("could not read input")
				}
				return
			}

			if strings.TrimSpace(line) == "" {
				continue
			}

			parsed, err := query.Parse(line)
			if err != nil {
				fmt.Fprintf(out, "Error: %s.\n", capitalize(err.Error()))
				continue
			}

			ctx := mySession.withTicker(parsed.Ticker)

			switch parsed.Kind {
			case query.KindQuit:
				return
			case query.KindQuarterly:
				printFreeCashFlow(out, mySession.pipeline.QuarterlyFreeCashFlow(ctx, parsed.Ticker))
			case query.KindAnnual:
				printFreeCashFlow(out, mySession.pipeline.AnnualFreeCashFlow(ctx, parsed.Ticker, parsed.Year))
			case query.KindIncome:
				printIncomeStatement(ctx, out, mySession.pipeline.IncomeStatement(ctx, parsed.Ticker))
			default:
				printLookup(ctx, out, mySession.pipeline, parsed.Ticker)
			}
		}
	},
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
