//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "chai-biscuit-web"
)

var Default = Run

// Tidy: go mod tidy
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// Build: compile the web binary into bin/
func Build() error {
	mg.Deps(Tidy)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(binDir, appName)
	fmt.Println("Building", out, "...")
	return sh.RunV("go", "build", "-o", out, "./cmd/web")
}

// Run: go run the web service on :8080
func Run() error {
	fmt.Println("Running (go run) on :8080 ...")
	return sh.RunV("go", "run", "./cmd/web")
}

// Mock: run the mock order event stream on :8001
func Mock() error {
	return sh.RunV("go", "run", "./cmd/tools/mockstream", "-addr", ":8001")
}

// Test: go test with race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint: golangci-lint if installed, go vet otherwise
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err == nil {
		return sh.RunV("golangci-lint", "run", "./...")
	}
	fmt.Println("golangci-lint not found, falling back to go vet")
	return sh.RunV("go", "vet", "./...")
}

// Clean: remove build output
func Clean() error {
	return os.RemoveAll(binDir)
}
