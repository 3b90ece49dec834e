package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type WriterProvider func(path string) (io.WriteCloser, error)

// FileWriter opens path for writing, truncating any previous content.
func FileWriter(path string) (io.WriteCloser, error) {
	w, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s for writing: %w", path, err)
	}
	return w, nil
}

// Result is the outcome of one generation run.
type Result struct {
	// Path is where the accessor file belongs.
	Path        string
	Source      []byte
	Members     []*Member
	Accessors   []string
	Diagnostics *Diagnostics
}

// Generate scans the package in dir and renders its accessor file. The
// returned Result is non-nil whenever the package loaded, so callers can
// report diagnostics even when err is set.
func Generate(ctx context.Context, dir string, cfg *Config, logger *zap.Logger) (*Result, error) {
	pkg, err := LoadPackage(ctx, dir, cfg.Output)
	if err != nil {
		return nil, err
	}

	diags := &Diagnostics{}
	res := &Result{
		Path:        filepath.Join(dir, cfg.Output),
		Diagnostics: diags,
	}

	res.Members = NewScanner(cfg, logger, diags).Scan(pkg)
	if err := diags.Err(); err != nil {
		return res, err
	}
	if len(res.Members) == 0 {
		diags.Errorf(CodeNoMembers, nil, "package %s has no testable markers", pkg.PkgPath)
		return res, diags.Err()
	}

	if !strings.HasSuffix(cfg.Output, "_test.go") {
		diags.Warnf(CodeOutput, nil, "output %s is not a test file, accessors will be part of the package build", cfg.Output)
	}

	var buf bytes.Buffer
	gen := NewGenerator(cfg, logger, diags, pkg.Types)
	if err := gen.Render(&buf, res.Members); err != nil {
		return res, fmt.Errorf("rendering accessors for %s: %w", pkg.PkgPath, err)
	}
	res.Accessors = gen.Accessors
	res.Source = buf.Bytes()

	if err := diags.Err(); err != nil {
		return res, err
	}

	if cfg.Verify {
		if err := Verify(ctx, dir, res.Path, res.Source); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Write stores the rendered source through the writer provider.
func (r *Result) Write(writer WriterProvider) (err error) {
	w, err := writer(r.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = w.Write(r.Source)
	return err
}
