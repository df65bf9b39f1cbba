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
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup TICKER",
	Short: "Show the company name and CIK for a ticker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mySession := newSession()
		defer mySession.finish()

		ticker := strings.ToUpper(strings.TrimSpace(args[0]))
		if !printLookup(mySession.withTicker(ticker), cmd.OutOrStdout(), mySession.pipeline, ticker) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
