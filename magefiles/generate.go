//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate builds the CLI and writes one article for topic into blog_output/.
func Generate(topic string) error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "generate", topic)
}

// Serve builds the CLI and starts the HTTP API.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}

// ClearCache drops every cached research result.
func ClearCache() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "cache", "clear")
}

func binPath() string {
	return filepath.Join(binDir, binName)
}
