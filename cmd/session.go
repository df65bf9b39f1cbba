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
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hako/durafmt"
	"github.com/penny-vault/edgarfacts/directory"
	"github.com/penny-vault/edgarfacts/pipeline"
	"github.com/penny-vault/edgarfacts/pkginfo"
	"github.com/penny-vault/edgarfacts/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// session holds the collaborators of one command invocation
type session struct {
	ctx       context.Context
	start     time.Time
	edgar     *provider.Edgar
	directory *directory.Directory
	pipeline  *pipeline.Pipeline
}

func newSession() *session {
	logger := log.With().Str("RunID", uuid.New().String()).Logger()
	ctx := logger.WithContext(context.Background())

	logger.Debug().Object("Build", pkginfo.Current()).Msg("starting")

	userAgent := strings.TrimSpace(viper.GetString("edgar.user_agent"))
	if userAgent == "" {
		logger.Fatal().Err(provider.ErrMissingUserAgent).Msg("set edgar.user_agent in the config file or pass --user-agent")
	}

	timeout := viper.GetDuration("edgar.timeout")
	edgar := provider.NewEdgar(
		fmt.Sprintf("%s %s", pkginfo.UserAgentProduct(), userAgent),
		provider.WithRateLimit(viper.GetFloat64("edgar.rate_limit")),
		provider.WithTimeout(timeout),
	)

	companies := loadDirectory(ctx, edgar)

	mySession := &session{
		ctx:       ctx,
		start:     time.Now(),
		edgar:     edgar,
		directory: companies,
		pipeline: &pipeline.Pipeline{
			Directory: companies,
			Filings:   edgar,
		},
	}

	if apiKey := viper.GetString("secapi.api_key"); apiKey != "" {
		mySession.pipeline.Facts = provider.NewSecAPI(apiKey, timeout)
	}

	return mySession
}

func loadDirectory(ctx context.Context, edgar *provider.Edgar) *directory.Directory {
	logger := zerolog.Ctx(ctx)

	if fn := viper.GetString("directory.file"); fn != "" {
		fh, err := os.Open(fn)
		if err != nil {
			logger.Fatal().Err(err).Str("FileName", fn).Msg("could not open company directory")
		}
		defer fh.Close()

		companies, err := directory.FromCSV(fh)
		if err != nil {
			logger.Fatal().Err(err).Str("FileName", fn).Msg("could not load company directory")
		}

		return companies
	}

	companies, err := edgar.Tickers(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not download company tickers from SEC")
	}

	return directory.New(companies)
}

// finish logs how long the invocation ran
func (mySession *session) finish() {
	runTime := time.Since(mySession.start)
	zerolog.Ctx(mySession.ctx).Debug().Str("RunTime", durafmt.Parse(runTime).LimitFirstN(2).String()).Msg("done")
}

// withTicker returns a context whose logger is tagged with the ticker
func (mySession *session) withTicker(ticker string) context.Context {
	logger := zerolog.Ctx(mySession.ctx).With().Str("Ticker", strings.ToUpper(ticker)).Logger()
	return logger.WithContext(mySession.ctx)
}
