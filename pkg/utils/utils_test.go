package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "already 2 decimals",
			input: 123.45,
			want:  123.45,
		},
		{
			name:  "integer",
			input: 123.0,
			want:  123.0,
		},
		{
			name:  "monthly payment",
			input: 599.5505251527569,
			want:  599.55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "small", input: 5.5, want: "5.50"},
		{name: "hundreds", input: 599.5505, want: "599.55"},
		{name: "thousands", input: 99900.4495, want: "99,900.45"},
		{name: "millions", input: 1234567.891, want: "1,234,567.89"},
		{name: "negative", input: -1500, want: "-1,500.00"},
		{name: "zero", input: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Money(tt.input); got != tt.want {
				t.Errorf("Money() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.834); got != "83.40%" {
		t.Errorf("Percent() = %q, want %q", got, "83.40%")
	}
	if got := Percent(1); got != "100.00%" {
		t.Errorf("Percent() = %q, want %q", got, "100.00%")
	}
}

func TestFormatNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		format func(float64) string
		input  float64
		want   string
	}{
		{name: "money NaN", format: Money, input: math.NaN(), want: "NaN"},
		{name: "money +Inf", format: Money, input: math.Inf(1), want: "+Inf"},
		{name: "percent NaN", format: Percent, input: math.NaN(), want: "NaN"},
		{name: "percent -Inf", format: Percent, input: math.Inf(-1), want: "-Inf"},
		{name: "fixed2 +Inf", format: Fixed2, input: math.Inf(1), want: "+Inf"},
		{name: "fixed2 finite", format: Fixed2, input: 99900.4495, want: "99900.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format(tt.input); got != tt.want {
				t.Errorf("format(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
