package params

// Options carries defaults of its own that accessors must not apply.
type Options struct {
	Level string `default:"info"`
}

// Widget has a method whose parameters reuse the receiver names.
type Widget struct {
	size int
}

//testable:generate default:"n=1"
func configure(opts *Options, n int) string {
	if opts == nil {
		return ""
	}
	return opts.Level
}

//testable:generate
func pick(_ int, arg0 string) string {
	return arg0
}

//testable:generate default:"x=1"
func span(x, X int) int {
	return X - x
}

//testable:generate
func (w *Widget) resize(instance, testableInstance int) int {
	return w.size + instance + testableInstance
}
