package generics

// Number is satisfied by the numeric types sum accepts.
type Number interface {
	~int | ~int64 | ~float64
}

// Box holds a single value.
type Box[T any] struct {
	value T `testable:""`
}

//testable:generate
func (b *Box[T]) swap(next T) (previous T) {
	previous, b.value = b.value, next
	return previous
}

// Pair indexes values by key.
type Pair[K comparable, V any] struct {
	entries map[K]V `testable:"getter"`
}

//testable:generate default:"scale=2"
func sum[N Number](scale N, values ...N) N {
	var total N
	for _, v := range values {
		total += v
	}
	return total * scale
}
