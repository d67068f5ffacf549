package enums

import (
	"fmt"
	"strings"
)

// ItemCondition grades the physical state of a donated item.
type ItemCondition string

const (
	ItemConditionExcellent ItemCondition = "excellent"
	ItemConditionGood      ItemCondition = "good"
	ItemConditionFair      ItemCondition = "fair"
	ItemConditionPoor      ItemCondition = "poor"
)

var validItemConditions = []ItemCondition{
	ItemConditionExcellent,
	ItemConditionGood,
	ItemConditionFair,
	ItemConditionPoor,
}

// String implements fmt.Stringer.
func (c ItemCondition) String() string {
	return string(c)
}

// IsValid reports whether the condition is recognized.
func (c ItemCondition) IsValid() bool {
	for _, candidate := range validItemConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCondition converts a raw string into an ItemCondition.
func ParseItemCondition(value string) (ItemCondition, error) {
	for _, candidate := range validItemConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item condition %q", value)
}

// ResolveItemCondition parses raw client input, accepting aliases like
// "like new" alongside canonical values.
func ResolveItemCondition(value string) (ItemCondition, bool) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if condition, err := ParseItemCondition(raw); err == nil {
		return condition, true
	}
	if mapped := MapItemCondition(raw); mapped != ItemConditionGood {
		return mapped, true
	}
	return "", false
}

// MapItemCondition maps free text from the AI backend onto a condition.
// Unrecognized values fall back to "good".
func MapItemCondition(value string) ItemCondition {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "new", "like new", "excellent":
		return ItemConditionExcellent
	case "good":
		return ItemConditionGood
	case "fair":
		return ItemConditionFair
	case "poor", "poor - still usable":
		return ItemConditionPoor
	default:
		return ItemConditionGood
	}
}
