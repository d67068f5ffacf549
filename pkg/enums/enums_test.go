package enums

import "testing"

func TestMapItemCategoryAliases(t *testing.T) {
	tests := []struct {
		input string
		want  ItemCategory
	}{
		{"Furniture", ItemCategoryFurniture},
		{"sports & outdoors", ItemCategorySports},
		{"Sports", ItemCategorySports},
		{"Electronics ", ItemCategoryElectronics},
		{"gadgets", ItemCategoryOther},
		{"", ItemCategoryOther},
	}
	for _, tt := range tests {
		if got := MapItemCategory(tt.input); got != tt.want {
			t.Fatalf("MapItemCategory(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestMapItemConditionAliases(t *testing.T) {
	tests := []struct {
		input string
		want  ItemCondition
	}{
		{"like new", ItemConditionExcellent},
		{"NEW", ItemConditionExcellent},
		{"good", ItemConditionGood},
		{"fair", ItemConditionFair},
		{"Poor - Still Usable", ItemConditionPoor},
		{"unknown", ItemConditionGood},
		{"", ItemConditionGood},
	}
	for _, tt := range tests {
		if got := MapItemCondition(tt.input); got != tt.want {
			t.Fatalf("MapItemCondition(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDonationStatusTransitions(t *testing.T) {
	if !DonationStatusAvailable.CanTransitionTo(DonationStatusClaimed) {
		t.Fatal("available should transition to claimed")
	}
	if !DonationStatusAvailable.CanTransitionTo(DonationStatusPickedUp) {
		t.Fatal("available should transition directly to picked_up")
	}
	if !DonationStatusClaimed.CanTransitionTo(DonationStatusPickedUp) {
		t.Fatal("claimed should transition to picked_up")
	}
	if DonationStatusClaimed.CanTransitionTo(DonationStatusAvailable) {
		t.Fatal("claimed must not return to available")
	}
	if DonationStatusPickedUp.CanTransitionTo(DonationStatusAvailable) || DonationStatusPickedUp.CanTransitionTo(DonationStatusClaimed) {
		t.Fatal("picked_up is terminal")
	}
	if !DonationStatusPickedUp.IsTerminal() {
		t.Fatal("picked_up should report terminal")
	}
}

func TestParseDonationStatus(t *testing.T) {
	if _, err := ParseDonationStatus("recycled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	status, err := ParseDonationStatus("claimed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != DonationStatusClaimed {
		t.Fatalf("unexpected status %s", status)
	}
}

func TestItemCategoryDisplayName(t *testing.T) {
	if got := ItemCategorySports.DisplayName(); got != "Sports & Outdoors" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := ItemCategoryFurniture.DisplayName(); got != "Furniture" {
		t.Fatalf("unexpected display name %q", got)
	}
}
