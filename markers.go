package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/structtag"
)

// MemberKind is the declaration kind of a marked member.
type MemberKind int

const (
	KindField MemberKind = iota
	KindMethod
	KindVar
	KindFunc
)

func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindVar:
		return "var"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Access selects which accessors are generated for fields and vars.
type Access uint8

const (
	AccessGetter Access = 1 << iota
	AccessSetter
	AccessClearer

	AccessAll = AccessGetter | AccessSetter | AccessClearer
)

func (a Access) Has(other Access) bool {
	return a&other == other
}

// ParamDefault is a default value declared for a function parameter.
type ParamDefault struct {
	Param string
	Value string
}

// Member is a marked declaration.
type Member struct {
	Kind MemberKind
	Name string
	// Alias replaces Name in accessor names when set.
	Alias string
	// Owner is the declaring type of fields and methods, nil otherwise.
	Owner    *types.TypeName
	Object   types.Object
	Access   Access
	Defaults []ParamDefault
	Pos      token.Position
}

// QualifiedName returns "Owner.name" for fields and methods and "name" otherwise.
func (m *Member) QualifiedName() string {
	if m.Owner != nil {
		return m.Owner.Name() + "." + m.Name
	}
	return m.Name
}

// accessorBase is the part of accessor names shared by all accessors of m.
func (m *Member) accessorBase() string {
	name := m.Alias
	if name == "" {
		name = toTitle(m.Name)
	}
	if m.Owner != nil {
		return toTitle(m.Owner.Name()) + name
	}
	return name
}

const (
	markerKeyAccess  = "access"
	markerKeyDefault = "default"
	markerKeyName    = "name"
)

// marker holds the options carried by a struct tag or a directive comment.
type marker struct {
	access    Access
	hasAccess bool
	defaults  []ParamDefault
	alias     string
}

// parseAccess parses a comma-separated access list. An empty list means all.
func parseAccess(value string) (Access, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return AccessAll, nil
	}

	var access Access
	for _, part := range strings.Split(value, ",") {
		switch strings.TrimSpace(part) {
		case "getter":
			access |= AccessGetter
		case "setter":
			access |= AccessSetter
		case "clearer":
			access |= AccessClearer
		case "all":
			access |= AccessAll
		default:
			return 0, fmt.Errorf("unknown access %q", part)
		}
	}
	return access, nil
}

// parseDefaults parses "param=value;param2=value".
func parseDefaults(value string) ([]ParamDefault, error) {
	var found []ParamDefault
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		param, val, ok := strings.Cut(part, "=")
		param = strings.TrimSpace(param)
		if !ok || param == "" {
			return nil, fmt.Errorf("default %q must have the form param=value", part)
		}
		if _, dup := seen[param]; dup {
			return nil, fmt.Errorf("duplicate default for parameter %s", param)
		}
		seen[param] = struct{}{}
		found = append(found, ParamDefault{Param: param, Value: strings.TrimSpace(val)})
	}
	return found, nil
}

// checkDefaultValue reports whether value can be applied by
// github.com/creasty/defaults to a parameter of type t. Only durations and
// basic kinds are checked; other types are left to defaults at run time.
func checkDefaultValue(t types.Type, value string) error {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := types.Unalias(t).(*types.Named); ok {
		if obj := named.Obj(); obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Duration" {
			_, err := time.ParseDuration(value)
			return err
		}
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return nil
	}

	var err error
	switch b.Kind() {
	case types.Bool:
		_, err = strconv.ParseBool(value)
	case types.Int, types.Int64:
		_, err = strconv.ParseInt(value, 0, 64)
	case types.Int8:
		_, err = strconv.ParseInt(value, 0, 8)
	case types.Int16:
		_, err = strconv.ParseInt(value, 0, 16)
	case types.Int32:
		_, err = strconv.ParseInt(value, 0, 32)
	case types.Uint, types.Uint64, types.Uintptr:
		_, err = strconv.ParseUint(value, 0, 64)
	case types.Uint8:
		_, err = strconv.ParseUint(value, 0, 8)
	case types.Uint16:
		_, err = strconv.ParseUint(value, 0, 16)
	case types.Uint32:
		_, err = strconv.ParseUint(value, 0, 32)
	case types.Float32:
		_, err = strconv.ParseFloat(value, 32)
	case types.Float64:
		_, err = strconv.ParseFloat(value, 64)
	case types.Complex64:
		_, err = strconv.ParseComplex(value, 64)
	case types.Complex128:
		_, err = strconv.ParseComplex(value, 128)
	}
	return err
}

// parseMarkerOptions reads struct-tag formatted options, e.g.
// `access:"getter" default:"multiplier=1.0"`.
func parseMarkerOptions(opts string) (*marker, error) {
	m := &marker{access: AccessAll}
	opts = strings.TrimSpace(opts)
	if opts == "" {
		return m, nil
	}

	tags, err := structtag.Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parsing options %q: %w", opts, err)
	}

	for _, tag := range tags.Tags() {
		switch tag.Key {
		case markerKeyAccess:
			m.access, err = parseAccess(tag.Value())
			if err != nil {
				return nil, err
			}
			m.hasAccess = true
		case markerKeyDefault:
			m.defaults, err = parseDefaults(tag.Value())
			if err != nil {
				return nil, err
			}
		case markerKeyName:
			if !isExportedName(tag.Value()) {
				return nil, fmt.Errorf("name %q must be an exported identifier", tag.Value())
			}
			m.alias = tag.Value()
		default:
			return nil, fmt.Errorf("unknown option %q", tag.Key)
		}
	}
	return m, nil
}

// parseDirective looks for the directive in a doc comment. It reports
// whether the directive was present.
func parseDirective(doc *ast.CommentGroup, directive string) (*marker, bool, error) {
	if doc == nil {
		return nil, false, nil
	}
	prefix := "//" + directive
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, prefix)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		m, err := parseMarkerOptions(rest)
		return m, true, err
	}
	return nil, false, nil
}

// parseFieldTag reads the access list from the field's struct tag.
func parseFieldTag(field *ast.Field, key string) (*marker, bool, error) {
	if field.Tag == nil {
		return nil, false, nil
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return nil, false, fmt.Errorf("unquoting tag: %w", err)
	}
	tags, err := structtag.Parse(raw)
	if err != nil {
		if strings.Contains(raw, key+":") {
			return nil, true, fmt.Errorf("parsing tag %s: %w", raw, err)
		}
		return nil, false, nil
	}
	tag, err := tags.Get(key)
	if err != nil {
		// not marked
		return nil, false, nil
	}
	access, err := parseAccess(tag.Value())
	if err != nil {
		return nil, true, err
	}
	return &marker{access: access, hasAccess: true}, true, nil
}
