package engine

import (
	"fmt"
	"math"
)

// Cents is a money amount in integer cents (int64 for precision).
// All bankrolls, bets and payouts are kept in cents so that the
// conservation invariants hold exactly.
type Cents int64

// FromEuros converts a euro amount to cents, rounding to the nearest cent.
func FromEuros(v float64) Cents {
	if v < 0 {
		return -FromEuros(-v)
	}
	return Cents(v*100 + 0.5)
}

// Euros returns the amount as a float euro value, for reporting only.
func (c Cents) Euros() float64 { return float64(c) / 100 }

func (c Cents) String() string {
	return fmt.Sprintf("%d.%02d", c/100, abs64(int64(c)%100))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// RoundToMultiple rounds an amount to the nearest multiple of the given
// chip or bet step. The step must be positive.
func RoundToMultiple(v, step Cents) Cents {
	if step <= 0 {
		return v
	}
	if v < 0 {
		return -RoundToMultiple(-v, step)
	}
	return (v + step/2) / step * step
}

// RoundFloatToMultiple rounds a fractional cent amount to the nearest
// multiple of the given step, used when a pool is split by a real-valued
// ratio before chip rounding.
func RoundFloatToMultiple(v float64, step Cents) Cents {
	if step <= 0 {
		return Cents(math.Round(v))
	}
	return Cents(math.Round(v/float64(step))) * step
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b Cents) int {
	if a <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}

func minCents(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

func maxCents(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}
