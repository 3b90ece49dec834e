package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Verify type-checks the package in dir, test variants included, with src
// standing in for the file at path.
func Verify(ctx context.Context, dir, path string, src []byte) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
		Tests:   true,
		Overlay: map[string][]byte{abs: src},
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("failed to load package %s: %w", dir, err)
	}

	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("generated accessors do not compile: %w", errors.Join(errs...))
	}
	return nil
}
