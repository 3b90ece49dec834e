package invalid

// Broken carries malformed markers.
type Broken struct {
	state int `testable:"reader"`
	mode  int `testable:getter`
}

//testable:generate default:"missing=1"
func (b *Broken) scale(factor int) int {
	return b.state * factor
}

//testable:generate access:"getter"
func (b *Broken) reset() {
	b.state = 0
}

//testable:generate default:"factor=abc"
func ratio(factor float64) float64 {
	return factor
}
