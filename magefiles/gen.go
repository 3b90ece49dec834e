//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Gen mg.Namespace

// Example regenerates the accessors of the example package
func (Gen) Example() error {
	fmt.Println("Regenerating example accessors...")
	return sh.RunV("go", "run", ".", "--verify", "example")
}

// Verify regenerates examples and checks if files changed
func (Gen) Verify() error {
	fmt.Println("Verifying generated files are up to date...")
	mg.Deps(Gen.Example)

	out, err := sh.Output("git", "status", "--porcelain", "example/")
	if err != nil {
		return err
	}

	if out != "" {
		return fmt.Errorf("generated files are out of date, run 'mage gen:example'")
	}

	fmt.Println("Generated files are up to date!")
	return nil
}
