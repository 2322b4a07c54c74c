// Package units provides shared constants and conversions for lengths.
// Geometry is stored in millimetres.
package units

import "fmt"

// Unit constants
const (
	MM = "mm"
	CM = "cm"
	M  = "m"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MM, CM, M}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertLength converts a length in millimetres to the target units.
// Unknown units return the value unchanged.
func ConvertLength(lengthMM float64, targetUnits string) float64 {
	switch targetUnits {
	case CM:
		return lengthMM / 10
	case M:
		return lengthMM / 1000
	default:
		return lengthMM
	}
}

// ConvertArea converts an area in square millimetres to square target units.
func ConvertArea(areaMM2 float64, targetUnits string) float64 {
	f := ConvertLength(1, targetUnits)
	return areaMM2 * f * f
}

// AxisLabel returns an axis title such as "X (mm)".
func AxisLabel(axis, unit string) string {
	return fmt.Sprintf("%s (%s)", axis, unit)
}
