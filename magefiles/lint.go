//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Lint mg.Namespace

// Go runs golangci-lint on the generator and the example package
func (Lint) Go() error {
	fmt.Println("Running golangci-lint...")
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Format checks if code is properly formatted
func (Lint) Format() error {
	fmt.Println("Checking code formatting...")
	return failOnOutput("gofmt", "-l", "-s", ".")
}

// Imports checks if imports are properly organized
func (Lint) Imports() error {
	fmt.Println("Checking import organization...")
	return failOnOutput("goimports", "-l", ".")
}

// All runs all linting checks
func (Lint) All() error {
	mg.Deps(Lint.Go, Lint.Format, Lint.Imports)
	return nil
}

// failOnOutput runs a listing tool and fails when it names any file.
func failOnOutput(cmd string, args ...string) error {
	out, err := sh.Output(cmd, args...)
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("%s reported files:\n%s", cmd, files)
	}
	return nil
}
