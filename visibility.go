package main

import (
	"fmt"
	"go/types"
)

// Reachable reports whether every type named in t can be referenced by code
// in the consumer scope of pkg. When it cannot, the reason names the first
// unreachable type found.
func Reachable(t types.Type, pkg *types.Package, scope Scope) (bool, string) {
	switch tt := t.(type) {
	case nil:
		return true, ""
	case *types.Alias:
		return Reachable(types.Unalias(tt), pkg, scope)
	case *types.Basic, *types.TypeParam:
		return true, ""
	case *types.Named:
		if ok, why := ReachableTypeName(tt.Origin().Obj(), pkg, scope); !ok {
			return false, why
		}
		args := tt.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			if ok, why := Reachable(args.At(i), pkg, scope); !ok {
				return false, why
			}
		}
		return true, ""
	case *types.Pointer:
		return Reachable(tt.Elem(), pkg, scope)
	case *types.Slice:
		return Reachable(tt.Elem(), pkg, scope)
	case *types.Array:
		return Reachable(tt.Elem(), pkg, scope)
	case *types.Chan:
		return Reachable(tt.Elem(), pkg, scope)
	case *types.Map:
		if ok, why := Reachable(tt.Key(), pkg, scope); !ok {
			return false, why
		}
		return Reachable(tt.Elem(), pkg, scope)
	case *types.Tuple:
		for i := 0; i < tt.Len(); i++ {
			if ok, why := Reachable(tt.At(i).Type(), pkg, scope); !ok {
				return false, why
			}
		}
		return true, ""
	case *types.Signature:
		if ok, why := Reachable(tt.Params(), pkg, scope); !ok {
			return false, why
		}
		return Reachable(tt.Results(), pkg, scope)
	case *types.Struct:
		for i := 0; i < tt.NumFields(); i++ {
			if ok, why := Reachable(tt.Field(i).Type(), pkg, scope); !ok {
				return false, why
			}
		}
		return true, ""
	case *types.Interface:
		for i := 0; i < tt.NumExplicitMethods(); i++ {
			if ok, why := Reachable(tt.ExplicitMethod(i).Type(), pkg, scope); !ok {
				return false, why
			}
		}
		for i := 0; i < tt.NumEmbeddeds(); i++ {
			if ok, why := Reachable(tt.EmbeddedType(i), pkg, scope); !ok {
				return false, why
			}
		}
		return true, ""
	case *types.Union:
		for i := 0; i < tt.Len(); i++ {
			if ok, why := Reachable(tt.Term(i).Type(), pkg, scope); !ok {
				return false, why
			}
		}
		return true, ""
	default:
		return false, fmt.Sprintf("unsupported type %s", t)
	}
}

// ReachableTypeName reports whether the declared type can be named from the
// consumer scope.
func ReachableTypeName(obj *types.TypeName, pkg *types.Package, scope Scope) (bool, string) {
	if obj.Pkg() == nil {
		// predeclared: error, comparable
		return true, ""
	}
	if isLocal(obj) {
		return false, fmt.Sprintf("type %s is declared inside a function", obj.Name())
	}
	if obj.Pkg().Path() != pkg.Path() {
		if !obj.Exported() {
			return false, fmt.Sprintf("type %s.%s is unexported", obj.Pkg().Name(), obj.Name())
		}
		return true, ""
	}
	if scope == ScopeExternal && !obj.Exported() {
		return false, fmt.Sprintf("type %s is unexported", obj.Name())
	}
	return true, ""
}

// isLocal reports whether obj is declared inside a function body.
func isLocal(obj types.Object) bool {
	return obj.Pkg() != nil && obj.Parent() != nil && obj.Parent() != obj.Pkg().Scope()
}

// typeParamsReachable checks the constraints of a type parameter list.
func typeParamsReachable(tps *types.TypeParamList, pkg *types.Package, scope Scope) (bool, string) {
	for i := 0; i < tps.Len(); i++ {
		if ok, why := Reachable(tps.At(i).Constraint(), pkg, scope); !ok {
			return false, why
		}
	}
	return true, ""
}

// MemberReachable applies the visibility boundary to a member: its owner,
// the type parameters it carries and every type in its accessor signatures.
func MemberReachable(m *Member, pkg *types.Package, scope Scope) (bool, string) {
	if m.Owner != nil {
		if ok, why := ReachableTypeName(m.Owner, pkg, scope); !ok {
			return false, why
		}
		if named, ok := m.Owner.Type().(*types.Named); ok {
			if ok, why := typeParamsReachable(named.TypeParams(), pkg, scope); !ok {
				return false, why
			}
		}
	}

	switch m.Kind {
	case KindVar:
		if isLocal(m.Object) {
			return false, fmt.Sprintf("var %s is declared inside a function", m.Name)
		}
		return Reachable(m.Object.Type(), pkg, scope)
	case KindField:
		return Reachable(m.Object.Type(), pkg, scope)
	case KindMethod, KindFunc:
		sig := m.Object.Type().(*types.Signature)
		if ok, why := typeParamsReachable(sig.TypeParams(), pkg, scope); !ok {
			return false, why
		}
		return Reachable(sig, pkg, scope)
	}
	return true, ""
}
