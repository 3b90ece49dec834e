package main

import (
	"go/types"
	"strconv"

	"github.com/dave/jennifer/jen"
	"github.com/fatih/structtag"
)

// typeCode converts a go/types type to jen.Code. Named types are rendered
// with jen.Qual so the output file gains the imports it needs.
func typeCode(t types.Type) jen.Code {
	switch tt := t.(type) {
	case *types.Alias:
		return typeCode(types.Unalias(tt))
	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(tt.Name())
	case *types.TypeParam:
		return jen.Id(tt.Obj().Name())
	case *types.Named:
		obj := tt.Obj()
		var code *jen.Statement
		if obj.Pkg() == nil {
			code = jen.Id(obj.Name())
		} else {
			code = jen.Qual(obj.Pkg().Path(), obj.Name())
		}
		if args := tt.TypeArgs(); args.Len() > 0 {
			list := make([]jen.Code, 0, args.Len())
			for i := 0; i < args.Len(); i++ {
				list = append(list, typeCode(args.At(i)))
			}
			code = code.Types(list...)
		}
		return code
	case *types.Pointer:
		return jen.Op("*").Add(typeCode(tt.Elem()))
	case *types.Slice:
		return jen.Index().Add(typeCode(tt.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(tt.Len()))).Add(typeCode(tt.Elem()))
	case *types.Map:
		return jen.Map(typeCode(tt.Key())).Add(typeCode(tt.Elem()))
	case *types.Chan:
		switch tt.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(typeCode(tt.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(typeCode(tt.Elem()))
		default:
			return jen.Chan().Add(typeCode(tt.Elem()))
		}
	case *types.Signature:
		return jen.Func().Params(tupleCode(tt.Params(), tt.Variadic())...).Add(resultsCode(tt.Results()))
	case *types.Struct:
		return structCode(tt)
	case *types.Interface:
		return interfaceCode(tt)
	case *types.Union:
		return unionCode(tt)
	default:
		return jen.Any()
	}
}

// tupleCode renders the types of a parameter list without names.
func tupleCode(tuple *types.Tuple, variadic bool) []jen.Code {
	list := make([]jen.Code, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		t := tuple.At(i).Type()
		if variadic && i == tuple.Len()-1 {
			list = append(list, jen.Op("...").Add(typeCode(t.(*types.Slice).Elem())))
			continue
		}
		list = append(list, typeCode(t))
	}
	return list
}

// resultsCode renders a result list: nothing, a bare type, or a parenthesized list.
func resultsCode(results *types.Tuple) jen.Code {
	switch results.Len() {
	case 0:
		return jen.Null()
	case 1:
		return typeCode(results.At(0).Type())
	default:
		return jen.Params(tupleCode(results, false)...)
	}
}

func structCode(st *types.Struct) jen.Code {
	fields := make([]jen.Code, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		var field *jen.Statement
		if f.Embedded() {
			field = jen.Add(typeCode(f.Type()))
		} else {
			field = jen.Id(f.Name()).Add(typeCode(f.Type()))
		}
		if tag := tagMap(st.Tag(i)); len(tag) > 0 {
			field = field.Tag(tag)
		}
		fields = append(fields, field)
	}
	return jen.Struct(fields...)
}

// tagMap parses a raw struct tag into the form jen.Tag expects.
func tagMap(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	tags, err := structtag.Parse(raw)
	if err != nil || tags == nil {
		return nil
	}
	m := make(map[string]string, tags.Len())
	for _, tag := range tags.Tags() {
		m[tag.Key] = tag.Value()
	}
	return m
}

func interfaceCode(it *types.Interface) jen.Code {
	if it.Empty() {
		return jen.Any()
	}
	if it.IsImplicit() && it.NumEmbeddeds() == 1 {
		// constraint literal such as ~int | string
		return typeCode(it.EmbeddedType(0))
	}

	items := make([]jen.Code, 0, it.NumExplicitMethods()+it.NumEmbeddeds())
	for i := 0; i < it.NumEmbeddeds(); i++ {
		items = append(items, typeCode(it.EmbeddedType(i)))
	}
	for i := 0; i < it.NumExplicitMethods(); i++ {
		m := it.ExplicitMethod(i)
		sig := m.Type().(*types.Signature)
		items = append(items, jen.Id(m.Name()).Params(tupleCode(sig.Params(), sig.Variadic())...).Add(resultsCode(sig.Results())))
	}
	return jen.Interface(items...)
}

func unionCode(u *types.Union) jen.Code {
	terms := make([]jen.Code, 0, u.Len())
	for i := 0; i < u.Len(); i++ {
		term := u.Term(i)
		if term.Tilde() {
			terms = append(terms, jen.Op("~").Add(typeCode(term.Type())))
			continue
		}
		terms = append(terms, typeCode(term.Type()))
	}
	return jen.Union(terms...)
}

// typeParamsCode renders type parameter declarations, e.g. [K comparable, V any].
func typeParamsCode(tps *types.TypeParamList) []jen.Code {
	list := make([]jen.Code, 0, tps.Len())
	for i := 0; i < tps.Len(); i++ {
		tp := tps.At(i)
		list = append(list, jen.Id(tp.Obj().Name()).Add(typeCode(tp.Constraint())))
	}
	return list
}

// typeArgsCode renders the type parameters as arguments, e.g. [K, V].
func typeArgsCode(tps *types.TypeParamList) []jen.Code {
	list := make([]jen.Code, 0, tps.Len())
	for i := 0; i < tps.Len(); i++ {
		list = append(list, jen.Id(tps.At(i).Obj().Name()))
	}
	return list
}

// withTypes appends type arguments or parameters when there are any.
func withTypes(s *jen.Statement, list []jen.Code) *jen.Statement {
	if len(list) == 0 {
		return s
	}
	return s.Types(list...)
}

// zeroCode returns the expression assigned by clearers.
func zeroCode(t types.Type) jen.Code {
	if _, ok := t.(*types.TypeParam); ok {
		return jen.Op("*").New(typeCode(t))
	}
	switch types.Unalias(t).Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return jen.Nil()
	case *types.Basic:
		b := t.Underlying().(*types.Basic)
		switch {
		case b.Info()&types.IsBoolean != 0:
			return jen.False()
		case b.Info()&types.IsString != 0:
			return jen.Lit("")
		case b.Kind() == types.UnsafePointer:
			return jen.Nil()
		case b.Info()&types.IsNumeric != 0:
			return jen.Lit(0)
		}
	}
	return jen.Op("*").New(typeCode(t))
}

// argName names the i-th parameter when the declaration leaves it unnamed.
func argName(i int) string {
	return "arg" + strconv.Itoa(i)
}
