package enums

import (
	"fmt"
	"strings"
)

// ItemCategory classifies a donated item.
type ItemCategory string

const (
	ItemCategoryFurniture   ItemCategory = "furniture"
	ItemCategoryClothing    ItemCategory = "clothing"
	ItemCategoryElectronics ItemCategory = "electronics"
	ItemCategoryBooks       ItemCategory = "books"
	ItemCategoryToys        ItemCategory = "toys"
	ItemCategoryKitchenware ItemCategory = "kitchenware"
	ItemCategorySports      ItemCategory = "sports"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryFurniture,
	ItemCategoryClothing,
	ItemCategoryElectronics,
	ItemCategoryBooks,
	ItemCategoryToys,
	ItemCategoryKitchenware,
	ItemCategorySports,
	ItemCategoryOther,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// DisplayName returns the label shown in clients.
func (c ItemCategory) DisplayName() string {
	switch c {
	case ItemCategorySports:
		return "Sports & Outdoors"
	case "":
		return ""
	default:
		return strings.ToUpper(string(c[0])) + string(c[1:])
	}
}

// ParseItemCategory converts a raw string into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}

// ResolveItemCategory parses raw client input, accepting display aliases like
// "Sports & Outdoors" alongside canonical values.
func ResolveItemCategory(value string) (ItemCategory, bool) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if category, err := ParseItemCategory(raw); err == nil {
		return category, true
	}
	if mapped := MapItemCategory(raw); mapped != ItemCategoryOther {
		return mapped, true
	}
	return "", false
}

// MapItemCategory maps free text from the AI backend onto a category.
// Unrecognized values fall back to "other".
func MapItemCategory(value string) ItemCategory {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "furniture":
		return ItemCategoryFurniture
	case "clothing":
		return ItemCategoryClothing
	case "electronics":
		return ItemCategoryElectronics
	case "books":
		return ItemCategoryBooks
	case "toys":
		return ItemCategoryToys
	case "kitchenware":
		return ItemCategoryKitchenware
	case "sports & outdoors", "sports":
		return ItemCategorySports
	default:
		return ItemCategoryOther
	}
}
