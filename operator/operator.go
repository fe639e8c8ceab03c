// Package operator maps comparison symbols to float64 predicates.
package operator

import (
	"errors"
	"fmt"
	"sort"
)

// Func reports whether a stands in the operator's relation to b.
type Func func(a, b float64) bool

var ErrUnknownOperator = errors.New("unknown operator")

var operators = map[string]Func{
	"==": func(a, b float64) bool { return a == b },
	"<":  func(a, b float64) bool { return a < b },
	"<=": func(a, b float64) bool { return a <= b },
	">":  func(a, b float64) bool { return a > b },
	">=": func(a, b float64) bool { return a >= b },
}

// Lookup returns the predicate registered for symbol.
func Lookup(symbol string) (Func, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// Get is like Lookup but panics when symbol is not registered. Asking for an
// operator that does not exist is a programming error.
func Get(symbol string) Func {
	op, ok := operators[symbol]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownOperator, symbol))
	}
	return op
}

// Symbols returns the registered symbols in sorted order.
func Symbols() []string {
	symbols := make([]string, 0, len(operators))
	for s := range operators {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
