// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build metadata injected via ldflags.
package version

import "fmt"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildTime string `json:"built"`
}

// Dev is reported when no build metadata was injected.
var Dev = Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown"}

// OrDev returns i, or Dev when i carries no version.
func (i Info) OrDev() Info {
	if i.Version == "" {
		return Dev
	}
	return i
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
