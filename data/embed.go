// Package data provides the embedded default roster and utilities for
// loading roster files.
package data

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
