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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/edgarfacts/provider"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type edgarConfig struct {
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"`
	Timeout   string  `toml:"timeout"`
}

type secAPIConfig struct {
	APIKey string `toml:"api_key"`
}

type logConfig struct {
	Level string `toml:"level"`
}

type configFile struct {
	Edgar  edgarConfig  `toml:"edgar"`
	SecAPI secAPIConfig `toml:"secapi"`
	Log    logConfig    `toml:"log"`
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Gather EDGAR and sec-api.io settings and save them to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		settings := configFile{
			Edgar: edgarConfig{
				UserAgent: viper.GetString("edgar.user_agent"),
				Timeout:   viper.GetDuration("edgar.timeout").String(),
			},
			SecAPI: secAPIConfig{APIKey: viper.GetString("secapi.api_key")},
			Log:    logConfig{Level: viper.GetString("log.level")},
		}

		rateLimit := strconv.FormatFloat(viper.GetFloat64("edgar.rate_limit"), 'f', -1, 64)

		form := huh.NewForm(
			// SEC requires requesters to identify themselves
			huh.NewGroup(
				huh.NewInput().
					Title("Who should SEC contact about your requests? (e.g. Your Name you@example.com)").
					Value(&settings.Edgar.UserAgent).
					Validate(func(userAgent string) error {
						if strings.TrimSpace(userAgent) == "" {
							return provider.ErrMissingUserAgent
						}
						return nil
					}),

				huh.NewInput().
					Title("What is the maximum number of EDGAR requests per second?").
					Value(&rateLimit).
					Validate(func(val string) error {
						limit, err := strconv.ParseFloat(val, 64)
						if err != nil || limit <= 0 || limit > provider.DefaultRateLimit {
							return fmt.Errorf("enter a number between 0 and %.0f", provider.DefaultRateLimit)
						}
						return nil
					}),
			),

			// XBRL conversion for income statements
			huh.NewGroup(
				huh.NewInput().
					Title("Enter your sec-api.io API key (leave blank to disable income statements):").
					Value(&settings.SecAPI.APIKey),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		settings.Edgar.RateLimit, _ = strconv.ParseFloat(rateLimit, 64)
		if _, err := time.ParseDuration(settings.Edgar.Timeout); err != nil {
			settings.Edgar.Timeout = provider.DefaultTimeout.String()
		}

		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".edgarfacts.toml")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(settings)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("edgarfacts is configured")
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
