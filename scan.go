package main

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// LoadPackage loads the single package in dir. The previous output file is
// replaced by its bare package clause so stale accessors never break loading.
func LoadPackage(ctx context.Context, dir, output string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
		Overlay: stubOverlay(filepath.Join(dir, output)),
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}
	return pkg, nil
}

// stubOverlay returns an overlay reducing an existing non-test output file to
// its package clause. Test files are not part of the scanned package.
func stubOverlay(path string) map[string][]byte {
	if strings.HasSuffix(path, "_test.go") {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	if _, err := os.Stat(abs); err != nil {
		return nil
	}
	f, err := parser.ParseFile(token.NewFileSet(), abs, nil, parser.PackageClauseOnly)
	if err != nil {
		return nil
	}
	return map[string][]byte{abs: []byte("package " + f.Name.Name + "\n")}
}

// Scanner collects marked members from a loaded package.
type Scanner struct {
	cfg    *Config
	logger *zap.Logger
	diags  *Diagnostics

	pkg *packages.Package
	// bodies of named struct types; other struct literals cannot own accessors
	named map[*ast.StructType]*types.TypeName
}

func NewScanner(cfg *Config, logger *zap.Logger, diags *Diagnostics) *Scanner {
	return &Scanner{
		cfg:    cfg,
		logger: logger,
		diags:  diags,
	}
}

// Scan returns the marked members of pkg in source order. Invalid markers
// are reported as error diagnostics.
func (s *Scanner) Scan(pkg *packages.Package) []*Member {
	s.pkg = pkg
	s.named = make(map[*ast.StructType]*types.TypeName)

	var members []*Member
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			s.logger.Debug("skipping generated file", zap.String("file", pkg.Fset.File(file.Pos()).Name()))
			continue
		}
		members = append(members, s.scanFile(file)...)
	}
	return members
}

func (s *Scanner) scanFile(file *ast.File) []*Member {
	var members []*Member
	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.FuncDecl:
			if m := s.scanFunc(n); m != nil {
				members = append(members, m)
			}
		case *ast.GenDecl:
			members = append(members, s.scanGenDecl(n)...)
		case *ast.StructType:
			members = append(members, s.scanStruct(n)...)
		}
		return true
	})
	return members
}

func (s *Scanner) position(p token.Pos) token.Position {
	return s.pkg.Fset.Position(p)
}

func (s *Scanner) markerError(pos token.Pos, name string, err error) {
	s.diags.Add(Diagnostic{
		Severity: SeverityError,
		Code:     CodeMarker,
		Message:  err.Error(),
		Member:   name,
		Pos:      s.position(pos),
	})
}

func (s *Scanner) scanFunc(fd *ast.FuncDecl) *Member {
	mk, ok, err := parseDirective(fd.Doc, s.cfg.Directive)
	if !ok {
		return nil
	}
	if err != nil {
		s.markerError(fd.Pos(), fd.Name.Name, err)
		return nil
	}
	if mk.hasAccess {
		s.markerError(fd.Pos(), fd.Name.Name, errors.New("access applies to fields and vars only"))
		return nil
	}

	fn, ok := s.pkg.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		return nil
	}
	sig := fn.Type().(*types.Signature)

	m := &Member{
		Kind:   KindFunc,
		Name:   fn.Name(),
		Alias:  mk.alias,
		Object: fn,
		Pos:    s.position(fd.Pos()),
	}
	if recv := sig.Recv(); recv != nil {
		m.Kind = KindMethod
		m.Owner = ownerOf(recv.Type())
		if m.Owner == nil {
			s.markerError(fd.Pos(), fd.Name.Name, errors.New("cannot resolve receiver type"))
			return nil
		}
	}
	if fn.Name() == "init" || (fn.Name() == "main" && s.pkg.Name == "main" && m.Owner == nil) {
		s.markerError(fd.Pos(), fd.Name.Name, errors.New("init and main cannot be marked"))
		return nil
	}

	for _, d := range mk.defaults {
		i := paramIndex(sig, d.Param)
		if i < 0 {
			s.markerError(fd.Pos(), m.QualifiedName(), fmt.Errorf("default names unknown parameter %s", d.Param))
			return nil
		}
		if sig.Variadic() && i == sig.Params().Len()-1 {
			s.markerError(fd.Pos(), m.QualifiedName(), fmt.Errorf("variadic parameter %s cannot have a default", d.Param))
			return nil
		}
		if err := checkDefaultValue(sig.Params().At(i).Type(), d.Value); err != nil {
			s.markerError(fd.Pos(), m.QualifiedName(), fmt.Errorf("default %q for parameter %s: %w", d.Value, d.Param, err))
			return nil
		}
	}
	m.Defaults = mk.defaults

	s.logger.Debug("found testable member", zap.Stringer("kind", m.Kind), zap.String("member", m.QualifiedName()))
	return m
}

func (s *Scanner) scanGenDecl(gd *ast.GenDecl) []*Member {
	groupMarker, groupMarked, err := parseDirective(gd.Doc, s.cfg.Directive)
	if groupMarked && err != nil {
		s.markerError(gd.Pos(), "", err)
		return nil
	}

	switch gd.Tok {
	case token.TYPE:
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if st, ok := ts.Type.(*ast.StructType); ok {
				if tn, ok := s.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
					s.named[st] = tn
				}
			}
			if _, marked, _ := parseDirective(ts.Doc, s.cfg.Directive); marked || groupMarked {
				s.markerError(ts.Pos(), ts.Name.Name, errors.New("types cannot be marked, mark their fields or methods"))
			}
		}
		return nil
	case token.VAR:
	default:
		if groupMarked {
			s.markerError(gd.Pos(), "", fmt.Errorf("only var declarations can be marked, not %s", gd.Tok))
		}
		return nil
	}

	var members []*Member
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		mk, marked, err := parseDirective(vs.Doc, s.cfg.Directive)
		if !marked {
			mk, marked, err = groupMarker, groupMarked, nil
		}
		if !marked {
			continue
		}
		if err != nil {
			s.markerError(vs.Pos(), vs.Names[0].Name, err)
			continue
		}
		if len(mk.defaults) > 0 {
			s.markerError(vs.Pos(), vs.Names[0].Name, errors.New("default applies to functions only"))
			continue
		}

		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			v, ok := s.pkg.TypesInfo.Defs[name].(*types.Var)
			if !ok {
				continue
			}
			members = append(members, &Member{
				Kind:   KindVar,
				Name:   v.Name(),
				Alias:  mk.alias,
				Object: v,
				Access: mk.access,
				Pos:    s.position(name.Pos()),
			})
		}
	}
	return members
}

func (s *Scanner) scanStruct(st *ast.StructType) []*Member {
	owner := s.named[st]

	var members []*Member
	for _, field := range st.Fields.List {
		mk, marked, err := parseFieldTag(field, s.cfg.TagKey)
		if !marked {
			mk, marked, err = parseDirective(field.Doc, s.cfg.Directive)
		}
		if !marked {
			continue
		}

		names := field.Names
		if names == nil {
			if id := embeddedIdent(field.Type); id != nil {
				names = []*ast.Ident{id}
			}
		}
		label := ""
		if len(names) > 0 {
			label = names[0].Name
		}

		if err != nil {
			s.markerError(field.Pos(), label, err)
			continue
		}
		if owner == nil {
			s.markerError(field.Pos(), label, errors.New("fields of anonymous structs cannot be marked"))
			continue
		}
		if len(mk.defaults) > 0 {
			s.markerError(field.Pos(), owner.Name()+"."+label, errors.New("default applies to functions only"))
			continue
		}

		for _, name := range names {
			if name.Name == "_" {
				continue
			}
			v, ok := s.pkg.TypesInfo.Defs[name].(*types.Var)
			if !ok {
				continue
			}
			members = append(members, &Member{
				Kind:   KindField,
				Name:   v.Name(),
				Alias:  mk.alias,
				Owner:  owner,
				Object: v,
				Access: mk.access,
				Pos:    s.position(name.Pos()),
			})
		}
	}
	return members
}

// ownerOf returns the named type behind a receiver type.
func ownerOf(t types.Type) *types.TypeName {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Origin().Obj()
	}
	return nil
}

// embeddedIdent returns the identifier naming an embedded field.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	}
	return nil
}

func paramIndex(sig *types.Signature, name string) int {
	for i := 0; i < sig.Params().Len(); i++ {
		if sig.Params().At(i).Name() == name {
			return i
		}
	}
	return -1
}
