package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return b.closeErr
}

func TestResultWrite(t *testing.T) {
	res := &Result{Path: "pkg/testable_generated_test.go", Source: []byte("package pkg\n")}

	buf := &bufferCloser{}
	var opened string
	err := res.Write(func(path string) (io.WriteCloser, error) {
		opened = path
		return buf, nil
	})
	require.NoError(t, err)
	assert.Equal(t, res.Path, opened)
	assert.Equal(t, "package pkg\n", buf.String())
	assert.True(t, buf.closed)
}

func TestResultWriteErrors(t *testing.T) {
	res := &Result{Path: "out_test.go", Source: []byte("package pkg\n")}

	openErr := errors.New("read-only")
	err := res.Write(func(string) (io.WriteCloser, error) { return nil, openErr })
	assert.ErrorIs(t, err, openErr)

	closeErr := errors.New("disk full")
	buf := &bufferCloser{closeErr: closeErr}
	err = res.Write(func(string) (io.WriteCloser, error) { return buf, nil })
	assert.ErrorIs(t, err, closeErr)
}
