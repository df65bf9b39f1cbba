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
	"os"

	"github.com/spf13/cobra"
)

var fcfYear int

var fcfCmd = &cobra.Command{
	Use:   "fcf TICKER",
	Short: "Compute free cash flow from the latest 10-Q or the 10-K for a year",
	Long: `Compute free cash flow (operating cash flow less capital expenditures) from
a company's filings. Without --year the latest 10-Q is used. With --year the
10-K whose report period or filing date falls in the year is used, falling back
to the latest 10-K when there is none.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mySession := newSession()
		defer mySession.finish()

		ctx := mySession.withTicker(args[0])

		var ok bool
		if fcfYear != 0 {
			ok = printFreeCashFlow(cmd.OutOrStdout(), mySession.pipeline.AnnualFreeCashFlow(ctx, args[0], fcfYear))
		} else {
			ok = printFreeCashFlow(cmd.OutOrStdout(), mySession.pipeline.QuarterlyFreeCashFlow(ctx, args[0]))
		}

		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fcfCmd)
	fcfCmd.Flags().IntVarP(&fcfYear, "year", "y", 0, "fiscal year of the 10-K to use")
}
