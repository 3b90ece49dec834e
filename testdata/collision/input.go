package collision

// Counter has a field whose getter name is already taken.
type Counter struct {
	value int `testable:"getter"`
}

// TestableCounterValue is declared by hand.
func TestableCounterValue(c *Counter) int {
	return c.value
}

//testable:generate name:"Reset"
func reset() {}

//testable:generate name:"Reset"
func resetAll() {}

//testable:generate
func tick() int {
	return 1
}
