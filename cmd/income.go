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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var incomeCmd = &cobra.Command{
	Use:   "income TICKER",
	Short: "Display the income statement from the latest 10-K",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetString("secapi.api_key") == "" {
			log.Fatal().Msg("income statements require secapi.api_key to be set")
		}

		mySession := newSession()
		defer mySession.finish()

		ctx := mySession.withTicker(args[0])
		if !printIncomeStatement(ctx, cmd.OutOrStdout(), mySession.pipeline.IncomeStatement(ctx, args[0])) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(incomeCmd)
}
