// Package loyalty implements the donor progression model: tiers unlocked by
// cumulative donation counts, points accrued per donation, and a fixed reward
// catalog with one-time claims.
package loyalty

// Tier is a named loyalty level.
type Tier string

const (
	TierNewbie   Tier = "newbie"
	TierHelper   Tier = "helper"
	TierGuardian Tier = "guardian"
	TierChampion Tier = "champion"
	TierLegend   Tier = "legend"
)

// PointsPerDonation is the accrual rate applied on every stats recompute.
const PointsPerDonation = 10

// tierThresholds is ordered ascending by donations required.
var tierThresholds = []struct {
	tier      Tier
	donations int
}{
	{TierNewbie, 0},
	{TierHelper, 5},
	{TierGuardian, 15},
	{TierChampion, 30},
	{TierLegend, 50},
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the tier is recognized.
func (t Tier) IsValid() bool {
	for _, entry := range tierThresholds {
		if entry.tier == t {
			return true
		}
	}
	return false
}

// DonationsRequired returns the threshold that unlocks the tier.
func (t Tier) DonationsRequired() int {
	for _, entry := range tierThresholds {
		if entry.tier == t {
			return entry.donations
		}
	}
	return 0
}

// DisplayName returns the label shown in clients.
func (t Tier) DisplayName() string {
	switch t {
	case TierHelper:
		return "Helper"
	case TierGuardian:
		return "Guardian"
	case TierChampion:
		return "Champion"
	case TierLegend:
		return "Legend"
	default:
		return "Newbie"
	}
}

// TierFor selects the tier with the highest threshold not exceeding the
// donation count. Counts at or below zero resolve to Newbie.
func TierFor(donations int) Tier {
	current := TierNewbie
	for _, entry := range tierThresholds {
		if donations >= entry.donations {
			current = entry.tier
		}
	}
	return current
}

// PointsFor returns the loyalty points accrued for a donation count.
func PointsFor(donations int) int {
	if donations <= 0 {
		return 0
	}
	return donations * PointsPerDonation
}

// Progress describes how far a donor is from the next tier.
type Progress struct {
	NextTier        *Tier   `json:"next_tier,omitempty"`
	DonationsNeeded int     `json:"donations_needed"`
	Fraction        float64 `json:"fraction"`
}

// ProgressToNextTier reports the next tier, donations still needed, and the
// completed fraction in [0,1]. At the top tier it returns (nil, 0, 1.0).
func ProgressToNextTier(donations int) Progress {
	current := TierFor(donations)
	for i, entry := range tierThresholds {
		if entry.tier != current {
			continue
		}
		if i == len(tierThresholds)-1 {
			return Progress{NextTier: nil, DonationsNeeded: 0, Fraction: 1.0}
		}
		next := tierThresholds[i+1]
		fraction := float64(donations) / float64(next.donations)
		if fraction < 0 {
			fraction = 0
		}
		nextTier := next.tier
		return Progress{
			NextTier:        &nextTier,
			DonationsNeeded: next.donations - donations,
			Fraction:        fraction,
		}
	}
	return Progress{NextTier: nil, DonationsNeeded: 0, Fraction: 1.0}
}
