// Package calculator is code under test that depends on a Calculator.
package calculator

import "errors"

// ErrEmpty is returned when there is nothing to average.
var ErrEmpty = errors.New("no values")

// Calculator performs arithmetic.
type Calculator interface {
	Add(a, b int) int
	Divide(a, b int) (int, error)
	Reset()
}

// Average divides the sum of values by their count.
func Average(calc Calculator, values ...int) (int, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}

	return calc.Divide(Sum(calc, values...), len(values))
}

// Sum resets calc and adds values to a running total, one call per value.
func Sum(calc Calculator, values ...int) int {
	calc.Reset()

	total := 0
	for _, value := range values {
		total = calc.Add(total, value)
	}

	return total
}
