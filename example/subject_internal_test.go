package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListOfInternalExamples(t *testing.T) {
	s := NewSubject()

	first := s.createListOfInternalExamples()
	second := s.createListOfInternalExamples()

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.NotNil(t, first[0])
	assert.NotSame(t, first[0], second[0])
}
