package query

import (
	"math/rand/v2"
)

// Order decides which entry of the list is picked next.
type Order interface {
	// Next returns the index of the next entry. prev is the previously
	// picked index, valid only when hasPrev is true; n is the entry
	// count.
	Next(prev int, hasPrev bool, n int) int
}

// OrderFunc adapts a function to the Order interface.
type OrderFunc func(prev int, hasPrev bool, n int) int

// Next implements Order.
func (f OrderFunc) Next(prev int, hasPrev bool, n int) int { return f(prev, hasPrev, n) }

// InOrder cycles through the entry list front to back.
func InOrder() Order {
	return OrderFunc(func(prev int, hasPrev bool, n int) int {
		if !hasPrev {
			return 0
		}
		return (prev + 1) % n
	})
}

// Random picks entries uniformly at random. A nil src uses the shared
// generator.
func Random(src *rand.Rand) Order {
	return OrderFunc(func(_ int, _ bool, n int) int {
		if src != nil {
			return src.IntN(n)
		}
		return rand.IntN(n)
	})
}
