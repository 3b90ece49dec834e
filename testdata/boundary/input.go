package boundary

// Registry mixes members with exported and unexported types.
type Registry struct {
	entries []entry `testable:"getter"`
	count   int     `testable:"getter"`
}

type entry struct {
	name string
}

//testable:generate
func (r *Registry) lookup(name string) (entry, bool) {
	for _, e := range r.entries {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}

//testable:generate
func (r *Registry) size() int {
	return len(r.entries)
}

type hidden struct {
	flag bool `testable:""`
}

// Build returns a value whose type only exists inside this function.
func Build() any {
	type local struct {
		n int `testable:"getter"`
	}
	return local{}
}

//testable:generate
var retries = 3

//testable:generate access:"getter"
var lookupTable = map[string]entry{}
