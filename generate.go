package main

import (
	"fmt"
	"go/token"
	"go/types"
	"io"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
)

const (
	// GeneratedHeader marks files written by testablegen.
	GeneratedHeader = "Code generated by github.com/ecordell/testablegen. DO NOT EDIT."

	defaultsPkg = "github.com/creasty/defaults"
	defaultTag  = "default"

	instanceId = "instance"
	valueId    = "value"
	argsId     = "args"
)

// Generator renders accessors for the members of one package.
type Generator struct {
	cfg    *Config
	logger *zap.Logger
	diags  *Diagnostics

	pkg     *types.Package
	claimed map[string]token.Position
	// Accessors lists the generated declaration names in output order.
	Accessors []string
}

func NewGenerator(cfg *Config, logger *zap.Logger, diags *Diagnostics, pkg *types.Package) *Generator {
	return &Generator{
		cfg:     cfg,
		logger:  logger,
		diags:   diags,
		pkg:     pkg,
		claimed: make(map[string]token.Position),
	}
}

// Render writes the accessor file for members to w. Members that cross the
// visibility boundary are reported and left out; the rest still render.
func (g *Generator) Render(w io.Writer, members []*Member) error {
	buf := jen.NewFilePathName(g.pkg.Path(), g.pkg.Name())
	buf.PackageComment(GeneratedHeader)

	for _, m := range members {
		if ok, why := MemberReachable(m, g.pkg, g.cfg.Scope); !ok {
			g.reportUnreachable(m, why)
			continue
		}

		switch m.Kind {
		case KindField:
			g.writeFieldAccessors(buf, m)
		case KindVar:
			g.writeVarAccessors(buf, m)
		case KindMethod, KindFunc:
			g.writeCallAccessor(buf, m)
			if len(m.Defaults) > 0 {
				g.writeArgsAccessor(buf, m)
			}
		}
	}

	return buf.Render(w)
}

func (g *Generator) reportUnreachable(m *Member, why string) {
	const format = "no accessor generated: %s"
	switch g.cfg.Unreachable {
	case UnreachableIgnore:
		g.diags.Infof(CodeUnreachable, m, format, why)
	case UnreachableError:
		g.diags.Errorf(CodeUnreachable, m, format, why)
	default:
		g.diags.Warnf(CodeUnreachable, m, format, why)
	}
}

// claim reserves an accessor name. Names already declared in the package or
// by another accessor are collisions.
func (g *Generator) claim(name string, m *Member) bool {
	if prev, ok := g.claimed[name]; ok {
		g.diags.Errorf(CodeCollision, m, "accessor %s already generated for the member at %s", name, prev)
		return false
	}
	if obj := g.pkg.Scope().Lookup(name); obj != nil {
		g.diags.Errorf(CodeCollision, m, "accessor %s collides with %s declared in the package", name, obj.Name())
		return false
	}
	g.claimed[name] = m.Pos
	g.Accessors = append(g.Accessors, name)
	return true
}

// accessorName joins the prefix, an optional verb and the member base name.
func (g *Generator) accessorName(verb string, m *Member) string {
	return g.cfg.Prefix + verb + m.accessorBase()
}

// ownerTypeParams returns the type parameters accessors of m must declare.
func ownerTypeParams(m *Member) *types.TypeParamList {
	if m.Kind == KindMethod {
		return m.Object.Type().(*types.Signature).RecvTypeParams()
	}
	if named, ok := m.Owner.Type().(*types.Named); ok {
		return named.TypeParams()
	}
	return nil
}

// ownerRef renders the owner type instantiated with its own type parameters.
func ownerRef(m *Member) *jen.Statement {
	ref := jen.Qual(m.Owner.Pkg().Path(), m.Owner.Name())
	if tps := ownerTypeParams(m); tps != nil {
		ref = withTypes(ref, typeArgsCode(tps))
	}
	return ref
}

func ownerTypeParamsCode(m *Member) []jen.Code {
	if tps := ownerTypeParams(m); tps != nil {
		return typeParamsCode(tps)
	}
	return nil
}

func (g *Generator) writeFieldAccessors(buf *jen.File, m *Member) {
	fieldType := typeCode(m.Object.Type())
	tparams := ownerTypeParamsCode(m)
	field := jen.Id(instanceId).Dot(m.Name)

	if m.Access.Has(AccessGetter) {
		name := g.accessorName("", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s returns %s.", name, m.QualifiedName()))
			withTypes(buf.Func().Id(name), tparams).Params(
				jen.Id(instanceId).Op("*").Add(ownerRef(m)),
			).Add(fieldType).Block(
				jen.Return(field.Clone()),
			)
		}
	}

	if m.Access.Has(AccessSetter) {
		name := g.accessorName("Set", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s sets %s and returns the instance.", name, m.QualifiedName()))
			withTypes(buf.Func().Id(name), tparams).Params(
				jen.Id(instanceId).Op("*").Add(ownerRef(m)),
				jen.Id(valueId).Add(fieldType),
			).Op("*").Add(ownerRef(m)).Block(
				field.Clone().Op("=").Id(valueId),
				jen.Return(jen.Id(instanceId)),
			)
		}
	}

	if m.Access.Has(AccessClearer) {
		name := g.accessorName("Clear", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s resets %s to its zero value and returns the instance.", name, m.QualifiedName()))
			withTypes(buf.Func().Id(name), tparams).Params(
				jen.Id(instanceId).Op("*").Add(ownerRef(m)),
			).Op("*").Add(ownerRef(m)).Block(
				field.Clone().Op("=").Add(zeroCode(m.Object.Type())),
				jen.Return(jen.Id(instanceId)),
			)
		}
	}
}

func (g *Generator) writeVarAccessors(buf *jen.File, m *Member) {
	varType := typeCode(m.Object.Type())
	target := jen.Qual(g.pkg.Path(), m.Name)

	if m.Access.Has(AccessGetter) {
		name := g.accessorName("", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s returns %s.", name, m.Name))
			buf.Func().Id(name).Params().Add(varType).Block(
				jen.Return(target.Clone()),
			)
		}
	}

	if m.Access.Has(AccessSetter) {
		name := g.accessorName("Set", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s sets %s.", name, m.Name))
			buf.Func().Id(name).Params(jen.Id(valueId).Add(varType)).Block(
				target.Clone().Op("=").Id(valueId),
			)
		}
	}

	if m.Access.Has(AccessClearer) {
		name := g.accessorName("Clear", m)
		if g.claim(name, m) {
			buf.Comment(fmt.Sprintf("%s resets %s to its zero value.", name, m.Name))
			buf.Func().Id(name).Params().Block(
				target.Clone().Op("=").Add(zeroCode(m.Object.Type())),
			)
		}
	}
}

// callShape holds what both call accessors need to know about a signature.
type callShape struct {
	sig      *types.Signature
	instance string
	names    []string
	// tparams are declared by the accessor, targs forwarded to the callee.
	tparams []jen.Code
	targs   []jen.Code
}

func newCallShape(m *Member) callShape {
	sig := m.Object.Type().(*types.Signature)
	shape := callShape{sig: sig, instance: instanceId}

	params := sig.Params()
	used := make(map[string]bool, params.Len()+1)
	for i := 0; i < params.Len(); i++ {
		if name := params.At(i).Name(); name != "" && name != "_" {
			used[name] = true
		}
	}
	shape.names = make([]string, params.Len())
	for i := 0; i < params.Len(); i++ {
		name := params.At(i).Name()
		if name == "" || name == "_" {
			name = uniqueName(argName(i), used)
		}
		shape.names[i] = name
	}
	if used[instanceId] {
		shape.instance = uniqueName("testable"+toTitle(instanceId), used)
	}

	if m.Kind == KindMethod {
		shape.tparams = ownerTypeParamsCode(m)
	} else {
		shape.tparams = typeParamsCode(sig.TypeParams())
		shape.targs = typeArgsCode(sig.TypeParams())
	}
	return shape
}

// callee renders the expression being called.
func (s callShape) callee(g *Generator, m *Member) *jen.Statement {
	if m.Kind == KindMethod {
		return jen.Id(s.instance).Dot(m.Name)
	}
	return withTypes(jen.Qual(g.pkg.Path(), m.Name), s.targs)
}

// finish returns the call as a return statement or a plain statement.
func (s callShape) finish(call *jen.Statement) *jen.Statement {
	if s.sig.Results().Len() == 0 {
		return call
	}
	return jen.Return(call)
}

func (g *Generator) writeCallAccessor(buf *jen.File, m *Member) {
	name := g.accessorName("", m)
	if !g.claim(name, m) {
		return
	}
	shape := newCallShape(m)
	params := shape.sig.Params()

	var decl []jen.Code
	if m.Kind == KindMethod {
		decl = append(decl, jen.Id(shape.instance).Op("*").Add(ownerRef(m)))
	}
	args := make([]jen.Code, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		pname := shape.names[i]
		if shape.sig.Variadic() && i == params.Len()-1 {
			elem := params.At(i).Type().(*types.Slice).Elem()
			decl = append(decl, jen.Id(pname).Op("...").Add(typeCode(elem)))
			args = append(args, jen.Id(pname).Op("..."))
			continue
		}
		decl = append(decl, jen.Id(pname).Add(typeCode(params.At(i).Type())))
		args = append(args, jen.Id(pname))
	}

	buf.Comment(fmt.Sprintf("%s calls %s.", name, m.QualifiedName()))
	withTypes(buf.Func().Id(name), shape.tparams).Params(decl...).Add(resultsCode(shape.sig.Results())).Block(
		shape.finish(shape.callee(g, m).Call(args...)),
	)
}

// writeArgsAccessor renders an arguments struct whose defaulted fields are
// filled by github.com/creasty/defaults, plus an accessor taking it.
func (g *Generator) writeArgsAccessor(buf *jen.File, m *Member) {
	typeName := g.accessorName("", m) + "Args"
	funcName := g.accessorName("", m) + "WithArgs"
	if !g.claim(typeName, m) || !g.claim(funcName, m) {
		return
	}
	shape := newCallShape(m)
	params := shape.sig.Params()

	defaultsByParam := make(map[string]string, len(m.Defaults))
	for _, d := range m.Defaults {
		defaultsByParam[d.Param] = d.Value
	}

	// fields without a declared default are tagged "-" so MustSet leaves
	// the caller's values alone
	skip := map[string]string{defaultTag: "-"}
	fieldNames := make(map[string]bool, params.Len())

	fields := make([]jen.Code, 0, params.Len())
	args := make([]jen.Code, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		fieldName := uniqueName(toTitle(shape.names[i]), fieldNames)
		value := jen.Id(argsId).Dot(fieldName)

		if shape.sig.Variadic() && i == params.Len()-1 {
			fields = append(fields, jen.Id(fieldName).Add(typeCode(p.Type())).Tag(skip))
			args = append(args, value.Op("..."))
			continue
		}

		def, hasDefault := defaultsByParam[p.Name()]
		_, isPointer := p.Type().Underlying().(*types.Pointer)
		switch {
		case !hasDefault:
			fields = append(fields, jen.Id(fieldName).Add(typeCode(p.Type())).Tag(skip))
			args = append(args, value)
		case isPointer:
			fields = append(fields, jen.Id(fieldName).Add(typeCode(p.Type())).Tag(map[string]string{defaultTag: def}))
			args = append(args, value)
		default:
			fields = append(fields, jen.Id(fieldName).Op("*").Add(typeCode(p.Type())).Tag(map[string]string{defaultTag: def}))
			args = append(args, jen.Op("*").Add(value))
		}
	}

	var targs []jen.Code
	if m.Kind == KindMethod {
		if tps := ownerTypeParams(m); tps != nil {
			targs = typeArgsCode(tps)
		}
	} else {
		targs = shape.targs
	}

	buf.Comment(fmt.Sprintf("%s holds the arguments of %s. Nil fields take their declared defaults.", typeName, m.QualifiedName()))
	withTypes(buf.Type().Id(typeName), shape.tparams).Struct(fields...)

	var decl []jen.Code
	if m.Kind == KindMethod {
		decl = append(decl, jen.Id(shape.instance).Op("*").Add(ownerRef(m)))
	}
	decl = append(decl, jen.Id(argsId).Add(withTypes(jen.Id(typeName), targs)))

	buf.Comment(fmt.Sprintf("%s calls %s after applying the declared defaults to args.", funcName, m.QualifiedName()))
	withTypes(buf.Func().Id(funcName), shape.tparams).Params(decl...).Add(resultsCode(shape.sig.Results())).Block(
		jen.Qual(defaultsPkg, "MustSet").Call(jen.Op("&").Id(argsId)),
		shape.finish(shape.callee(g, m).Call(args...)),
	)
}
