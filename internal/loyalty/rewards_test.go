package loyalty

import "testing"

type fakeClaimant struct {
	donations int
	points    int
	claimed   map[string]bool
}

func (f *fakeClaimant) DonationCount() int { return f.donations }
func (f *fakeClaimant) Points() int        { return f.points }
func (f *fakeClaimant) HasClaimed(id string) bool {
	return f.claimed[id]
}

func TestCatalogHasNineEntriesWithUniqueIDs(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 9 {
		t.Fatalf("expected 9 catalog entries, got %d", len(catalog))
	}
	seen := map[string]bool{}
	for _, reward := range catalog {
		if seen[reward.ID] {
			t.Fatalf("duplicate reward id %q", reward.ID)
		}
		seen[reward.ID] = true
	}
}

func TestAvailableRewardsFilters(t *testing.T) {
	claimant := &fakeClaimant{donations: 5, points: 50, claimed: map[string]bool{}}

	available := AvailableRewards(claimant)
	if len(available) != 2 {
		t.Fatalf("expected 2 helper-tier rewards, got %d", len(available))
	}
	for _, reward := range available {
		if reward.Tier != TierHelper {
			t.Fatalf("unexpected reward %q at tier %s", reward.ID, reward.Tier)
		}
	}

	claimant.claimed["helper_badge"] = true
	available = AvailableRewards(claimant)
	if len(available) != 1 || available[0].ID != "early_access" {
		t.Fatalf("expected only early_access after claiming the badge, got %v", available)
	}
}

func TestEligibleRequiresBothThresholds(t *testing.T) {
	reward, ok := RewardByID("helper_badge")
	if !ok {
		t.Fatal("helper_badge missing from catalog")
	}

	lowPoints := &fakeClaimant{donations: 5, points: 40, claimed: map[string]bool{}}
	if Eligible(reward, lowPoints) {
		t.Fatal("claimant with insufficient points should not be eligible")
	}

	lowDonations := &fakeClaimant{donations: 4, points: 500, claimed: map[string]bool{}}
	if Eligible(reward, lowDonations) {
		t.Fatal("claimant with insufficient donations should not be eligible")
	}
}

func TestClaimedRewards(t *testing.T) {
	claimant := &fakeClaimant{claimed: map[string]bool{"legend_badge": true}}
	claimed := ClaimedRewards(claimant)
	if len(claimed) != 1 || claimed[0].ID != "legend_badge" {
		t.Fatalf("unexpected claimed rewards %v", claimed)
	}
}

func TestRewardByIDMiss(t *testing.T) {
	if _, ok := RewardByID("nonexistent"); ok {
		t.Fatal("expected miss for unknown reward id")
	}
}
