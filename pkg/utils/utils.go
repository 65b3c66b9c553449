package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// Money форматирует сумму с двумя знаками после запятой и разделителем тысяч
func Money(value float64) string {
	if !IsFinite(value) {
		return nonFinite(value)
	}
	s := decimal.NewFromFloat(value).StringFixed(2)

	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	return sign + string(out) + frac
}

// Percent форматирует долю как проценты с двумя знаками
func Percent(share float64) string {
	if !IsFinite(share) {
		return nonFinite(share)
	}
	return decimal.NewFromFloat(share).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Fixed2 форматирует число с двумя знаками без разделителя тысяч
func Fixed2(value float64) string {
	if !IsFinite(value) {
		return nonFinite(value)
	}
	return decimal.NewFromFloat(value).StringFixed(2)
}

// nonFinite возвращает NaN, +Inf или -Inf, decimal такие значения не принимает
func nonFinite(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}
