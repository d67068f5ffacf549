package co2

import "fmt"

// FormatSavings renders kilograms for display: values of at least 1 kg keep
// one decimal, smaller values switch to whole grams.
func FormatSavings(kg float64) string {
	if kg >= 1.0 {
		return fmt.Sprintf("%.1f kg", kg)
	}
	return fmt.Sprintf("%.0f g", kg*1000)
}

// SavingsMessage returns the impact sentence for the given savings band.
func SavingsMessage(kg float64) string {
	formatted := FormatSavings(kg)
	switch {
	case kg >= 100:
		return fmt.Sprintf("Amazing! You've saved approximately %s of CO2 emissions - that's like taking a car off the road for several days!", formatted)
	case kg >= 50:
		return fmt.Sprintf("Great impact! You've saved approximately %s of CO2 emissions - equivalent to planting a tree!", formatted)
	case kg >= 10:
		return fmt.Sprintf("Nice work! You've saved approximately %s of CO2 emissions by choosing to donate instead of discard.", formatted)
	default:
		return fmt.Sprintf("Every bit helps! You've saved approximately %s of CO2 emissions - small actions make a big difference!", formatted)
	}
}
