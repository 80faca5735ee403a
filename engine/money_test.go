package engine

import "testing"

func TestFromEuros(t *testing.T) {
	tests := []struct {
		euros float64
		want  Cents
	}{
		{0, 0},
		{10, 1000},
		{0.25, 25},
		{10.004, 1000}, // rounds to the nearest cent
		{10.006, 1001},
		{-3.5, -350},
	}
	for _, tt := range tests {
		if got := FromEuros(tt.euros); got != tt.want {
			t.Errorf("FromEuros(%v) = %v, want %v", tt.euros, got, tt.want)
		}
	}
}

func TestEurosRoundTrip(t *testing.T) {
	if got := Cents(123456).Euros(); got != 1234.56 {
		t.Errorf("Euros() = %v, want 1234.56", got)
	}
}

func TestCentsString(t *testing.T) {
	tests := []struct {
		c    Cents
		want string
	}{
		{0, "0.00"},
		{1025, "10.25"},
		{-1025, "-10.25"},
		{5, "0.05"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", int64(tt.c), got, tt.want)
		}
	}
}

func TestRoundToMultiple(t *testing.T) {
	tests := []struct {
		v, step, want Cents
	}{
		{2338, 100, 2300},
		{2350, 100, 2400}, // half rounds up
		{2351, 100, 2400},
		{0, 100, 0},
		{-2338, 100, -2300},
		{-2350, 100, -2400},
		{17, 0, 17}, // degenerate step passes through
	}
	for _, tt := range tests {
		if got := RoundToMultiple(tt.v, tt.step); got != tt.want {
			t.Errorf("RoundToMultiple(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}

func TestRoundFloatToMultiple(t *testing.T) {
	tests := []struct {
		v    float64
		step Cents
		want Cents
	}{
		{499.5, 2, 500},
		{250.25, 25, 250},
		{487.5, 25, 500},
		{-487.5, 25, -500},
		{123.4, 0, 123},
	}
	for _, tt := range tests {
		if got := RoundFloatToMultiple(tt.v, tt.step); got != tt.want {
			t.Errorf("RoundFloatToMultiple(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b Cents
		want int
	}{
		{10_000, 2500, 4},
		{10_001, 2500, 5},
		{1, 2500, 1},
		{0, 2500, 0},
		{-50, 2500, 0},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
