// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides utilities for working with pointers in Go.

Optional domain fields (bio, image) are modeled as pointers rather than
sentinel empty strings, so "absent" and "empty" stay distinguishable. These
generic helpers remove the boilerplate around that convention.
*/
package pointer

// To returns a pointer to the provided value. Useful when a struct field
// expects a pointer to a literal (e.g. pointer.To("something")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
