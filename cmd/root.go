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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edgarfacts",
	Short: "edgarfacts extracts financial metrics from SEC EDGAR filings",
	Long: `edgarfacts is a command line utility for pulling financial metrics out of
the 10-K and 10-Q filings companies submit to the SEC. Given a ticker it
locates the relevant filing in EDGAR, reads the document and recovers:

	* free cash flow (operating cash flow less capital expenditures)
	* the income statement, assembled from the filing's XBRL facts

Values reported in thousands, millions or billions are converted to dollars.
Run "edgarfacts shell" for an interactive prompt.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("log.level")))
		if err != nil || level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	viper.SetDefault("edgar.rate_limit", 10)
	viper.SetDefault("edgar.timeout", "30s")
	viper.SetDefault("log.level", "info")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.edgarfacts.toml)")

	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent sent to SEC EDGAR, e.g. \"Your Name (you@example.com)\"")
	if err := viper.BindPFlag("edgar.user_agent", rootCmd.PersistentFlags().Lookup("user-agent")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for user-agent failed")
	}

	rootCmd.PersistentFlags().String("api-key", "", "sec-api.io API key used for XBRL data")
	if err := viper.BindPFlag("secapi.api_key", rootCmd.PersistentFlags().Lookup("api-key")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for api-key failed")
	}

	rootCmd.PersistentFlags().String("directory", "", "read the ticker directory from a CSV file instead of EDGAR")
	if err := viper.BindPFlag("directory.file", rootCmd.PersistentFlags().Lookup("directory")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for directory failed")
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for log-level failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".edgarfacts" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".edgarfacts")
	}

	viper.SetEnvPrefix("edgarfacts")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}
