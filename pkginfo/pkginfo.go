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
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Set at build time with -ldflags "-X github.com/penny-vault/edgarfacts/pkginfo.Version=..."
var (
	BuildDate  string
	CommitHash string
	Version    string
)

// Build describes the running binary
type Build struct {
	Version    string
	CommitHash string
	BuildDate  string
	OSArch     string
	GoVersion  string
}

func Current() Build {
	version := Version
	if version == "" {
		version = "dev"
	}

	return Build{
		Version:    version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
		OSArch:     runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion:  runtime.Version(),
	}
}

func (build Build) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Version", build.Version)
	e.Str("Commit", build.CommitHash)
	e.Str("BuildDate", build.BuildDate)
	e.Str("GoVersion", build.GoVersion)
}

// BuildVersionString returns a version info string suitable for printing on the command line
func BuildVersionString() string {
	build := Current()
	return fmt.Sprintf(`edgarfacts %s %s

Build Date: %s
Commit: %s
Built with: %s`, build.Version, build.OSArch, build.BuildDate, build.CommitHash, build.GoVersion)
}

// UserAgentProduct identifies the tool in the User-Agent sent to EDGAR. SEC
// asks for contact details in addition to the product.
func UserAgentProduct() string {
	return "edgarfacts/" + Current().Version
}

// GetDependencyList returns an array of all dependencies linked in with this program
// each string is of the form `package="version"`
func GetDependencyList() []string {
	var deps []string

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return deps
	}

	for _, dep := range buildInfo.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}

	sort.Strings(deps)

	return deps
}
