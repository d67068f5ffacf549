package accounts

import "github.com/freefind/freefind-backend/internal/loyalty"

// RegisterRequest creates a new donor account.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"max=80"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AuthResponse carries the minted token and the account it belongs to.
type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// UpdateProfileRequest patches profile fields. Nil pointers leave the current
// value untouched.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=80"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Location    *string `json:"location" validate:"omitempty,max=120"`
	HomeAddress *string `json:"home_address" validate:"omitempty,max=200"`
	Suburb      *string `json:"suburb" validate:"omitempty,max=80"`
}

// LoyaltySummary is the standing view returned to clients: current tier,
// points, and the reward catalog split by claimability.
type LoyaltySummary struct {
	Tier            loyalty.Tier     `json:"tier"`
	TierDisplayName string           `json:"tier_display_name"`
	Points          int              `json:"points"`
	DonationCount   int              `json:"donation_count"`
	CO2SavedKg      float64          `json:"co2_saved_kg"`
	Progress        loyalty.Progress `json:"progress"`
	Available       []loyalty.Reward `json:"available_rewards"`
	Claimed         []loyalty.Reward `json:"claimed_rewards"`
}

// ClaimRewardRequest names the catalog entry to claim.
type ClaimRewardRequest struct {
	RewardID string `json:"reward_id" validate:"required"`
}
