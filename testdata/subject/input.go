package subject

// Subject mirrors the example package without depending on it.
type Subject struct {
	defaultProperty map[string]float64 `testable:"getter,setter,clearer"`
}

//testable:generate default:"multiplier=1.0"
func (s *Subject) multiplySum(multiplier float64, valuesToSum ...*float64) float64 {
	var sum float64
	for _, v := range valuesToSum {
		if v != nil {
			sum += *v
		}
	}
	return sum * multiplier
}

//testable:generate
func (s *Subject) createListOfInternalExamples() []*internalExample {
	return []*internalExample{{}}
}

type internalExample struct {
	_ byte
}
