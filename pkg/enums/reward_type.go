package enums

import "fmt"

// RewardType describes what a loyalty reward unlocks.
type RewardType string

const (
	RewardTypeBadge    RewardType = "badge"
	RewardTypeTitle    RewardType = "title"
	RewardTypeFeature  RewardType = "feature"
	RewardTypeDiscount RewardType = "discount"
)

var validRewardTypes = []RewardType{
	RewardTypeBadge,
	RewardTypeTitle,
	RewardTypeFeature,
	RewardTypeDiscount,
}

// String implements fmt.Stringer.
func (r RewardType) String() string {
	return string(r)
}

// IsValid reports whether the reward type is recognized.
func (r RewardType) IsValid() bool {
	for _, candidate := range validRewardTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRewardType converts a raw string into a RewardType.
func ParseRewardType(value string) (RewardType, error) {
	for _, candidate := range validRewardTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reward type %q", value)
}
