// SPDX-License-Identifier: MIT

package expr

import "sync"

// Lazy is a write-once cell for a derived property (SLH form, reduced form,
// block structure). The first Get computes the value; later calls return the
// stored result, including a stored error. Safe for concurrent use.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns the cached value, computing it with f on first use.
func (l *Lazy[T]) Get(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = f() })

	return l.val, l.err
}
