package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueName(t *testing.T) {
	used := map[string]bool{"arg0": true, "arg02": true}

	assert.Equal(t, "arg1", uniqueName("arg1", used))
	assert.Equal(t, "arg03", uniqueName("arg0", used))
	assert.Equal(t, "arg12", uniqueName("arg1", used))
	assert.True(t, used["arg03"])

	fields := map[string]bool{}
	assert.Equal(t, "X", uniqueName("X", fields))
	assert.Equal(t, "X2", uniqueName("X", fields))
	assert.Equal(t, "X3", uniqueName("X", fields))
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "", toTitle(""))
	assert.Equal(t, "MultiplySum", toTitle("multiplySum"))
	assert.Equal(t, "Éclair", toTitle("éclair"))
	assert.True(t, isExportedName("Testable"))
	assert.False(t, isExportedName("testable"))
	assert.False(t, isExportedName("Test-able"))
}
