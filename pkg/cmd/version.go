// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime/debug"
)

const gonumPlotPackage = "gonum.org/v1/plot"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type (
	ComponentInfo struct {
		Version    string `json:"version"`
		CommitDate string `json:"commit_date,omitempty"`
		CommitSHA  string `json:"commit_sha,omitempty"`
	}

	VersionInfo struct {
		Gaussbench ComponentInfo `json:"gaussbench"`
		Plot       ComponentInfo `json:"gonum-plot"`
	}
)

func NewVersionInfo() VersionInfo {
	info, _ := debug.ReadBuildInfo()

	return VersionInfo{
		Gaussbench: getMainBuildInfo(info),
		Plot:       getModuleInfo(info, gonumPlotPackage),
	}
}

func getMainBuildInfo(info *debug.BuildInfo) ComponentInfo {
	ver, sha, buildDate := version, commit, date

	if ver != "dev" && sha != "unknown" && buildDate != "unknown" {
		return ComponentInfo{
			Version:    ver,
			CommitDate: buildDate,
			CommitSHA:  sha,
		}
	}

	if info != nil {
		if info.Main.Version != "" {
			ver = info.Main.Version
		} else {
			ver = "(devel)"
		}

		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && sha == "unknown" {
				sha = setting.Value
			}

			if setting.Key == "vcs.time" && buildDate == "unknown" {
				buildDate = setting.Value
			}
		}
	}

	return ComponentInfo{
		Version:    ver,
		CommitDate: buildDate,
		CommitSHA:  sha,
	}
}

func getModuleInfo(info *debug.BuildInfo, path string) ComponentInfo {
	if info == nil {
		return ComponentInfo{Version: "unknown"}
	}

	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}

		if dep.Replace != nil {
			return ComponentInfo{Version: dep.Replace.Version}
		}

		return ComponentInfo{Version: dep.Version}
	}

	return ComponentInfo{Version: "unknown"}
}

func (v VersionInfo) String() string {
	return fmt.Sprintf(`gaussbench:
    version: %s
    commit sha: %s
    commit date: %s
gonum-plot:
    version: %s`,
		v.Gaussbench.Version,
		v.Gaussbench.CommitSHA,
		v.Gaussbench.CommitDate,
		v.Plot.Version,
	)
}
