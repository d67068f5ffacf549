package loyalty

import (
	"math"
	"testing"
)

func TestTierForThresholds(t *testing.T) {
	tests := []struct {
		donations int
		want      Tier
	}{
		{-3, TierNewbie},
		{0, TierNewbie},
		{4, TierNewbie},
		{5, TierHelper},
		{14, TierHelper},
		{15, TierGuardian},
		{29, TierGuardian},
		{30, TierChampion},
		{49, TierChampion},
		{50, TierLegend},
		{100, TierLegend},
	}
	for _, tt := range tests {
		if got := TierFor(tt.donations); got != tt.want {
			t.Fatalf("TierFor(%d) = %s, want %s", tt.donations, got, tt.want)
		}
	}
}

func TestTierForIsMonotonic(t *testing.T) {
	rank := map[Tier]int{TierNewbie: 0, TierHelper: 1, TierGuardian: 2, TierChampion: 3, TierLegend: 4}
	prev := TierNewbie
	for donations := 0; donations <= 120; donations++ {
		current := TierFor(donations)
		if rank[current] < rank[prev] {
			t.Fatalf("tier decreased from %s to %s at %d donations", prev, current, donations)
		}
		prev = current
	}
}

func TestPointsFor(t *testing.T) {
	if got := PointsFor(7); got != 70 {
		t.Fatalf("PointsFor(7) = %d, want 70", got)
	}
	if got := PointsFor(0); got != 0 {
		t.Fatalf("PointsFor(0) = %d, want 0", got)
	}
	if got := PointsFor(-2); got != 0 {
		t.Fatalf("PointsFor(-2) = %d, want 0", got)
	}
}

func TestProgressToNextTier(t *testing.T) {
	progress := ProgressToNextTier(12)
	if progress.NextTier == nil || *progress.NextTier != TierGuardian {
		t.Fatalf("expected next tier guardian, got %v", progress.NextTier)
	}
	if progress.DonationsNeeded != 3 {
		t.Fatalf("expected 3 donations needed, got %d", progress.DonationsNeeded)
	}
	if math.Abs(progress.Fraction-0.8) > 1e-9 {
		t.Fatalf("expected fraction 0.8, got %v", progress.Fraction)
	}
}

func TestProgressAtMaxTier(t *testing.T) {
	progress := ProgressToNextTier(75)
	if progress.NextTier != nil {
		t.Fatalf("expected no next tier at legend, got %v", *progress.NextTier)
	}
	if progress.DonationsNeeded != 0 {
		t.Fatalf("expected 0 donations needed, got %d", progress.DonationsNeeded)
	}
	if progress.Fraction != 1.0 {
		t.Fatalf("expected fraction 1.0, got %v", progress.Fraction)
	}
}

func TestTierDisplayNames(t *testing.T) {
	if TierGuardian.DisplayName() != "Guardian" {
		t.Fatalf("unexpected display name %q", TierGuardian.DisplayName())
	}
	if Tier("bogus").DisplayName() != "Newbie" {
		t.Fatal("unknown tier should display as Newbie")
	}
}

func TestTierDonationsRequired(t *testing.T) {
	tests := map[Tier]int{
		TierNewbie:   0,
		TierHelper:   5,
		TierGuardian: 15,
		TierChampion: 30,
		TierLegend:   50,
	}
	for tier, want := range tests {
		if got := tier.DonationsRequired(); got != want {
			t.Fatalf("%s.DonationsRequired() = %d, want %d", tier, got, want)
		}
	}
}
