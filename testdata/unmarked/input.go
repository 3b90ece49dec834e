package unmarked

// Plain has no testable markers.
type Plain struct {
	name string
}

// Name returns the name.
func (p Plain) Name() string {
	return p.name
}
