package validation

import (
	"fmt"

	"github.com/iwvelando/debt-dashboard/pkg/constants"
)

// ValidateSliderDefaults returns warnings for configured slider defaults that
// fall outside the control ranges and will be clamped.
func ValidateSliderDefaults(capital, rate float64) []string {
	var warnings []string

	if capital < constants.MinCapital || capital > constants.MaxCapital {
		warnings = append(warnings, fmt.Sprintf("default capital %v outside [%v, %v] and will be clamped",
			capital, constants.MinCapital, constants.MaxCapital))
	}
	if rate < constants.MinRate || rate > constants.MaxRate {
		warnings = append(warnings, fmt.Sprintf("default rate %v outside [%v, %v] and will be clamped",
			rate, constants.MinRate, constants.MaxRate))
	}
	if rate != float64(int64(rate)) {
		warnings = append(warnings, fmt.Sprintf("default rate %v is not a whole percent and will be rounded", rate))
	}

	return warnings
}
