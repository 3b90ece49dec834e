// Package helpers holds small generic utilities for code that works with
// optional values, such as the arguments of generated accessors.
package helpers

// Ptr returns a pointer to a copy of value. It is the usual way to fill the
// optional fields of a generated arguments struct.
func Ptr[T any](value T) *T {
	return &value
}

// Present returns the values behind the non-nil pointers, in order.
func Present[T any](values []*T) []T {
	present := make([]T, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	return present
}

// Optional returns a slice of pointers to copies of values. It reads better
// than a chain of Ptr calls when building variadic optional arguments.
func Optional[T any](values ...T) []*T {
	optional := make([]*T, 0, len(values))
	for _, v := range values {
		optional = append(optional, Ptr(v))
	}
	return optional
}
