//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runCLI executes the built tagharvest binary with the given arguments.
func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// Pipeline runs the full pipeline: collect, extract, filter, archive.
func Pipeline() error {
	mg.Deps(Build)
	return runCLI("run")
}

// Collect runs the link-collection stage.
func Collect() error {
	mg.Deps(Build)
	return runCLI("collect")
}

// Extract runs the metadata-extraction stage.
func Extract() error {
	mg.Deps(Build)
	return runCLI("extract")
}

// Filter runs the filter/export stage.
func Filter() error {
	mg.Deps(Build)
	return runCLI("filter")
}
