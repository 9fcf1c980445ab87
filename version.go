// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package kvcache

// Build metadata, overridden at link time with -ldflags -X.
var (
	BuildTime = "1970-01-01_00:00:00"
	Version   = "0.1.0"
	Commit    = "ffffffff"
)

// VersionInfo contains the build metadata of a binary.
type VersionInfo struct {
	// Service contains the binary name.
	Service string `json:"service"`

	// Version contains the current version value.
	Version string `json:"version"`

	// Commit contains the commit the binary was built from.
	Commit string `json:"commit"`

	// BuildTime contains the build timestamp.
	BuildTime string `json:"build_time"`
}

// Info returns the build metadata of the named binary.
func Info(service string) VersionInfo {
	return VersionInfo{
		Service:   service,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}
