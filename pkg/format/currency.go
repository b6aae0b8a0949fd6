// Package format renders dashboard values as the fixed-precision strings
// shown on metric tiles and in terminal output.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Billions returns a currency string in billions (e.g., "$1.13B").
func Billions(amount float64) string {
	return Currency(amount) + "B"
}

// Percent returns a value with two decimals and a percent sign (e.g., "5.50%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// Score returns a value out of 100 with one decimal (e.g., "56.1/100").
func Score(value float64) string {
	return fmt.Sprintf("%.1f/100", value)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
