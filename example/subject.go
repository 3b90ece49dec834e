// Package example shows the members testablegen can expose to tests, and
// one it has to leave out.
package example

import "github.com/ecordell/testablegen/helpers"

//go:generate go run github.com/ecordell/testablegen .

// Subject carries unexported state and behavior reachable from tests only
// through the generated accessors.
type Subject struct {
	// defaultProperty may be replaced or set to nil, not only mutated.
	defaultProperty map[string]float64 `testable:"getter,setter,clearer"`
}

// NewSubject returns a Subject with defaultProperty seeded to {"any": 1.0}.
func NewSubject() *Subject {
	return &Subject{
		defaultProperty: map[string]float64{"any": 1.0},
	}
}

// multiplySum sums the non-nil values and multiplies the sum by multiplier.
//
//testable:generate default:"multiplier=1.0"
//lint:ignore U1000 reached through generated accessors
func (s *Subject) multiplySum(multiplier float64, valuesToSum ...*float64) float64 {
	var sum float64
	for _, v := range helpers.Present(valuesToSum) {
		sum += v
	}
	return sum * multiplier
}

// createListOfInternalExamples gets no accessor from the external test
// package since internalExample cannot be named there. Generation skips it.
//
//testable:generate
//lint:ignore U1000 reached through in-package tests
func (s *Subject) createListOfInternalExamples() []*internalExample {
	return []*internalExample{{}}
}

// internalExample has non-zero size so that every allocation has its own address.
type internalExample struct {
	_ byte
}
