// Package accounts owns the donor account model: identity, profile fields,
// donation stats, loyalty standing, and claimed rewards.
package accounts

import (
	"time"

	"github.com/freefind/freefind-backend/internal/loyalty"
	"github.com/google/uuid"
)

// Account is a donor profile. Donation stats and loyalty standing are derived
// from the ledger via RecomputeStats; claimed reward ids accumulate here.
type Account struct {
	ID            uuid.UUID    `json:"id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	DisplayName   string       `json:"display_name"`
	Bio           string       `json:"bio"`
	Location      string       `json:"location"`
	HomeAddress   string       `json:"home_address"`
	Suburb        string       `json:"suburb"`
	JoinedAt      time.Time    `json:"joined_at"`
	Donations     int          `json:"donation_count"`
	CO2SavedKg    float64      `json:"co2_saved_kg"`
	PointsBalance int          `json:"points"`
	PointsSpent   int          `json:"points_spent"`
	Tier          loyalty.Tier `json:"tier"`
	Claimed       []string     `json:"claimed_rewards"`
}

// DonationCount implements loyalty.Claimant.
func (a Account) DonationCount() int { return a.Donations }

// Points implements loyalty.Claimant.
func (a Account) Points() int { return a.PointsBalance }

// HasClaimed implements loyalty.Claimant.
func (a Account) HasClaimed(rewardID string) bool {
	for _, id := range a.Claimed {
		if id == rewardID {
			return true
		}
	}
	return false
}

// Credential pairs an account with its Argon2id password hash. Credentials
// live in their own document so profile reads never touch hashes.
type Credential struct {
	UserID       uuid.UUID `json:"user_id"`
	PasswordHash string    `json:"password_hash"`
}
