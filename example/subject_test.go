package example_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecordell/testablegen/example"
	"github.com/ecordell/testablegen/helpers"
)

func TestDefaultPropertyIsSeeded(t *testing.T) {
	s := example.NewSubject()
	assert.Equal(t, map[string]float64{"any": 1.0}, example.TestableSubjectDefaultProperty(s))
}

func TestDefaultPropertyCanBeReplaced(t *testing.T) {
	s := example.NewSubject()
	replacement := map[string]float64{"other": 2.5}

	got := example.TestableSetSubjectDefaultProperty(s, replacement)
	require.Same(t, s, got)
	assert.Equal(t, replacement, example.TestableSubjectDefaultProperty(s))
}

func TestDefaultPropertyCanBeNil(t *testing.T) {
	s := example.NewSubject()

	require.NotPanics(t, func() {
		example.TestableSetSubjectDefaultProperty(s, nil)
	})
	assert.Nil(t, example.TestableSubjectDefaultProperty(s))

	example.TestableSetSubjectDefaultProperty(s, map[string]float64{"any": 1.0})
	example.TestableClearSubjectDefaultProperty(s)
	assert.Nil(t, example.TestableSubjectDefaultProperty(s))
}

func TestMultiplySum(t *testing.T) {
	tests := []struct {
		name       string
		multiplier float64
		values     []*float64
		expected   float64
	}{
		{"no values", 1.0, nil, 0},
		{"no values ignores multiplier", 42, nil, 0},
		{"nil values are dropped", 2.0, []*float64{helpers.Ptr(1.0), nil, helpers.Ptr(3.0)}, 8.0},
		{"only nil values", 3.0, []*float64{nil, nil}, 0},
		{"negative multiplier", -0.5, helpers.Optional(2.0, 4.0), -3.0},
		{"zero multiplier", 0, helpers.Optional(2.0, 4.0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := example.NewSubject()
			assert.InDelta(t, tt.expected, example.TestableSubjectMultiplySum(s, tt.multiplier, tt.values...), 1e-9)
		})
	}
}

func TestMultiplySumMatchesScaledSum(t *testing.T) {
	s := example.NewSubject()
	values := []*float64{helpers.Ptr(1.5), nil, helpers.Ptr(-2.0), helpers.Ptr(10.25), nil}

	var sum float64
	for _, v := range helpers.Present(values) {
		sum += v
	}

	for _, m := range []float64{0, 1, 2.5, -3} {
		assert.InDelta(t, m*sum, example.TestableSubjectMultiplySum(s, m, values...), 1e-9, "multiplier %v", m)
	}
}

func TestMultiplySumWithArgsAppliesDefaultMultiplier(t *testing.T) {
	s := example.NewSubject()

	got := example.TestableSubjectMultiplySumWithArgs(s, example.TestableSubjectMultiplySumArgs{
		ValuesToSum: helpers.Optional(1.0, 3.0),
	})
	assert.InDelta(t, 4.0, got, 1e-9)

	assert.InDelta(t, 0.0, example.TestableSubjectMultiplySumWithArgs(s, example.TestableSubjectMultiplySumArgs{}), 1e-9)
}

func TestMultiplySumWithArgsKeepsExplicitMultiplier(t *testing.T) {
	s := example.NewSubject()

	got := example.TestableSubjectMultiplySumWithArgs(s, example.TestableSubjectMultiplySumArgs{
		Multiplier:  helpers.Ptr(2.0),
		ValuesToSum: []*float64{helpers.Ptr(1.0), nil, helpers.Ptr(3.0)},
	})
	assert.InDelta(t, 8.0, got, 1e-9)

	zero := example.TestableSubjectMultiplySumWithArgs(s, example.TestableSubjectMultiplySumArgs{
		Multiplier:  helpers.Ptr(0.0),
		ValuesToSum: helpers.Optional(5.0),
	})
	assert.InDelta(t, 0.0, zero, 1e-9)
}
