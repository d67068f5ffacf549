package loyalty

import "github.com/freefind/freefind-backend/pkg/enums"

// Reward is a catalog entry claimable once a donor meets both requirements.
type Reward struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	DonationsRequired int              `json:"donations_required"`
	PointsRequired    int              `json:"points_required"`
	Tier              Tier             `json:"tier"`
	Type              enums.RewardType `json:"type"`
	Special           bool             `json:"special"`
}

// rewardCatalog is the static catalog. Entries are never removed; claimed ids
// live on the account.
var rewardCatalog = []Reward{
	{
		ID:                "helper_badge",
		Title:             "Helper Badge",
		Description:       "Your first milestone! Thanks for helping the community.",
		DonationsRequired: 5,
		PointsRequired:    50,
		Tier:              TierHelper,
		Type:              enums.RewardTypeBadge,
	},
	{
		ID:                "early_access",
		Title:             "Early Access Features",
		Description:       "Get early access to new app features and updates.",
		DonationsRequired: 5,
		PointsRequired:    50,
		Tier:              TierHelper,
		Type:              enums.RewardTypeFeature,
		Special:           true,
	},
	{
		ID:                "guardian_badge",
		Title:             "Guardian Badge",
		Description:       "You're a true guardian of sustainability!",
		DonationsRequired: 15,
		PointsRequired:    150,
		Tier:              TierGuardian,
		Type:              enums.RewardTypeBadge,
	},
	{
		ID:                "priority_notifications",
		Title:             "Priority Notifications",
		Description:       "Get notified first about new items in your area.",
		DonationsRequired: 15,
		PointsRequired:    150,
		Tier:              TierGuardian,
		Type:              enums.RewardTypeFeature,
		Special:           true,
	},
	{
		ID:                "champion_badge",
		Title:             "Champion Badge",
		Description:       "You're a champion of the environment!",
		DonationsRequired: 30,
		PointsRequired:    300,
		Tier:              TierChampion,
		Type:              enums.RewardTypeBadge,
	},
	{
		ID:                "custom_profile",
		Title:             "Custom Profile Theme",
		Description:       "Unlock special profile themes and customizations.",
		DonationsRequired: 30,
		PointsRequired:    300,
		Tier:              TierChampion,
		Type:              enums.RewardTypeFeature,
		Special:           true,
	},
	{
		ID:                "legend_badge",
		Title:             "Legend Badge",
		Description:       "You're a legend! An inspiration to everyone.",
		DonationsRequired: 50,
		PointsRequired:    500,
		Tier:              TierLegend,
		Type:              enums.RewardTypeBadge,
	},
	{
		ID:                "legend_title",
		Title:             "Legend Title",
		Description:       "Display 'Legend' title on your profile.",
		DonationsRequired: 50,
		PointsRequired:    500,
		Tier:              TierLegend,
		Type:              enums.RewardTypeTitle,
		Special:           true,
	},
	{
		ID:                "moderator_features",
		Title:             "Community Moderator",
		Description:       "Help moderate the community and review donations.",
		DonationsRequired: 50,
		PointsRequired:    500,
		Tier:              TierLegend,
		Type:              enums.RewardTypeFeature,
		Special:           true,
	},
}

// Catalog returns the full reward catalog.
func Catalog() []Reward {
	out := make([]Reward, len(rewardCatalog))
	copy(out, rewardCatalog)
	return out
}

// RewardByID looks up a catalog entry.
func RewardByID(id string) (Reward, bool) {
	for _, reward := range rewardCatalog {
		if reward.ID == id {
			return reward, true
		}
	}
	return Reward{}, false
}

// Claimant is the account surface the reward logic needs.
type Claimant interface {
	DonationCount() int
	Points() int
	HasClaimed(rewardID string) bool
}

// Eligible reports whether the claimant currently meets all three claim
// conditions for the reward.
func Eligible(reward Reward, claimant Claimant) bool {
	return claimant.DonationCount() >= reward.DonationsRequired &&
		claimant.Points() >= reward.PointsRequired &&
		!claimant.HasClaimed(reward.ID)
}

// AvailableRewards filters the catalog to entries the claimant can claim now.
func AvailableRewards(claimant Claimant) []Reward {
	var out []Reward
	for _, reward := range rewardCatalog {
		if Eligible(reward, claimant) {
			out = append(out, reward)
		}
	}
	return out
}

// ClaimedRewards filters the catalog to entries already claimed.
func ClaimedRewards(claimant Claimant) []Reward {
	var out []Reward
	for _, reward := range rewardCatalog {
		if claimant.HasClaimed(reward.ID) {
			out = append(out, reward)
		}
	}
	return out
}
