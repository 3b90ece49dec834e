//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

// Default target runs the generator and example tests
var Default = Test.All

// CI runs the tests, the linters and the check that example/ holds the
// accessors testablegen currently generates
func CI() error {
	fmt.Println("Running CI checks...")
	mg.Deps(Test.All, Lint.All, Gen.Verify)
	return nil
}
