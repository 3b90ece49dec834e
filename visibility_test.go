package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visibilitySource = `package p

type Exported struct{}

type unexported struct{}

type Gen[T any] struct{}

type Number interface{ ~int | ~float64 }

type secret interface{ ~int }

func f() {
	type local struct{}
	_ = local{}
}

var (
	a []Exported
	b map[string]unexported
	c Gen[unexported]
	d func(Exported) (unexported, error)
	e chan<- *Exported
	g struct{ X unexported }
	h interface{ M() unexported }
	i [3]Exported
	j Gen[Exported]
	k error
	l func(...int) bool
)
`

// checkSource type-checks a single-file package without imports.
func checkSource(t *testing.T, src string) (*types.Package, *types.Info) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)

	info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
	pkg, err := (&types.Config{}).Check("example.com/p", fset, []*ast.File{f}, info)
	require.NoError(t, err)
	return pkg, info
}

func lookupDef(t *testing.T, info *types.Info, name string) types.Object {
	t.Helper()
	for id, obj := range info.Defs {
		if id.Name == name && obj != nil {
			return obj
		}
	}
	t.Fatalf("no definition named %s", name)
	return nil
}

func TestReachable(t *testing.T) {
	pkg, _ := checkSource(t, visibilitySource)

	tests := []struct {
		varName  string
		external bool
		inPkg    bool
	}{
		{"a", true, true},
		{"b", false, true},
		{"c", false, true},
		{"d", false, true},
		{"e", true, true},
		{"g", false, true},
		{"h", false, true},
		{"i", true, true},
		{"j", true, true},
		{"k", true, true},
		{"l", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.varName, func(t *testing.T) {
			typ := pkg.Scope().Lookup(tt.varName).Type()

			ok, why := Reachable(typ, pkg, ScopeExternal)
			assert.Equal(t, tt.external, ok, why)
			if !ok {
				assert.Contains(t, why, "unexported")
			}

			ok, why = Reachable(typ, pkg, ScopePackage)
			assert.Equal(t, tt.inPkg, ok, why)
		})
	}
}

func TestReachableLocalType(t *testing.T) {
	pkg, info := checkSource(t, visibilitySource)
	local := lookupDef(t, info, "local").(*types.TypeName)

	for _, scope := range []Scope{ScopeExternal, ScopePackage} {
		ok, why := ReachableTypeName(local, pkg, scope)
		assert.False(t, ok, "scope %s", scope)
		assert.Contains(t, why, "inside a function")

		ok, _ = Reachable(types.NewSlice(types.NewPointer(local.Type())), pkg, scope)
		assert.False(t, ok, "scope %s", scope)
	}
}

func TestReachableConstraints(t *testing.T) {
	pkg, _ := checkSource(t, visibilitySource)

	number := pkg.Scope().Lookup("Number").Type()
	ok, _ := Reachable(number, pkg, ScopeExternal)
	assert.True(t, ok)
	ok, _ = Reachable(number.Underlying(), pkg, ScopeExternal)
	assert.True(t, ok)

	secret := pkg.Scope().Lookup("secret").Type()
	ok, _ = Reachable(secret, pkg, ScopeExternal)
	assert.False(t, ok)
}

func TestMemberReachable(t *testing.T) {
	pkg, info := checkSource(t, visibilitySource)

	exported := pkg.Scope().Lookup("Exported").(*types.TypeName)
	hidden := pkg.Scope().Lookup("unexported").(*types.TypeName)
	local := lookupDef(t, info, "local").(*types.TypeName)

	field := func(owner *types.TypeName, typ types.Type) *Member {
		return &Member{
			Kind:   KindField,
			Name:   "x",
			Owner:  owner,
			Object: types.NewField(token.NoPos, pkg, "x", typ, false),
			Access: AccessAll,
		}
	}

	ok, _ := MemberReachable(field(exported, types.Typ[types.Int]), pkg, ScopeExternal)
	assert.True(t, ok)

	ok, why := MemberReachable(field(hidden, types.Typ[types.Int]), pkg, ScopeExternal)
	assert.False(t, ok)
	assert.Contains(t, why, "unexported")

	ok, _ = MemberReachable(field(hidden, types.Typ[types.Int]), pkg, ScopePackage)
	assert.True(t, ok)

	ok, _ = MemberReachable(field(local, types.Typ[types.Int]), pkg, ScopePackage)
	assert.False(t, ok)

	ok, _ = MemberReachable(field(exported, hidden.Type()), pkg, ScopeExternal)
	assert.False(t, ok)

	v := &Member{Kind: KindVar, Name: "a", Object: pkg.Scope().Lookup("a"), Access: AccessGetter}
	ok, _ = MemberReachable(v, pkg, ScopeExternal)
	assert.True(t, ok)
}
