//go:build mage

// Package main contains Mage build targets for the support brain.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

var binaries = map[string]string{
	"supportbrain": "./cmd/server",
	"supportctl":   "./cmd/supportctl",
}

// Build compiles the server and the command line tool into bin/
func Build() error {
	mg.Deps(Generate)
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		fmt.Printf("building %s\n", out)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Generate regenerates the wire injectors and the swagger docs
func Generate() {
	mg.Deps(Wire, Swag)
}

// Wire runs google/wire over internal/wire
func Wire() error {
	return sh.RunV("go", "run", "github.com/google/wire/cmd/wire", "./internal/wire")
}

// Swag regenerates docs/ from the handler annotations
func Swag() error {
	return sh.RunV("go", "run", "github.com/swaggo/swag/cmd/swag", "init",
		"-g", "cmd/server/main.go", "-o", "docs", "--parseInternal")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the container-backed tests; needs a Docker daemon
func Integration() error {
	return sh.RunV("go", "test", "-tags", "integration", "-count=1", "./internal/infrastructure/vector/...")
}

// Clean removes build output
func Clean() error {
	return sh.Rm(binDir)
}
