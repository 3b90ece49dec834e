//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Binary builds the testablegen binary
func (Build) Binary() error {
	fmt.Println("Building testablegen binary...")
	return sh.RunV("go", "build", "-o", "bin/testablegen", ".")
}

// Install installs testablegen to GOPATH/bin
func (Build) Install() error {
	fmt.Println("Installing testablegen...")
	return sh.RunV("go", "install", ".")
}

// Clean removes built artifacts and accessor files left behind by CLI runs
func (Build) Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("testdata/subject/cli_generated_test.go")
}
