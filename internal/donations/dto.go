package donations

import (
	"time"

	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
)

// ItemRequest carries the editable fields of a listing. Create and update use
// the same shape; updates replace every editable field.
type ItemRequest struct {
	Title       string    `json:"title" validate:"required,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	Category    string    `json:"category" validate:"required"`
	Condition   string    `json:"condition" validate:"required"`
	Photos      []string  `json:"photos" validate:"omitempty,max=10"`
	Location    string    `json:"location" validate:"required,max=200"`
	PickupStart time.Time `json:"pickup_start" validate:"required"`
	PickupEnd   time.Time `json:"pickup_end" validate:"required"`
	DonorName   string    `json:"donor_name" validate:"required,max=80"`
	DonorPhone  string    `json:"donor_phone" validate:"required,max=32"`
}

// CategoryEnum resolves the raw category, accepting the display aliases the
// clients send ("Sports & Outdoors") alongside canonical values.
func (r ItemRequest) CategoryEnum() (enums.ItemCategory, error) {
	if category, ok := enums.ResolveItemCategory(r.Category); ok {
		return category, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown item category "+r.Category)
}

// ConditionEnum resolves the raw condition, accepting aliases like "like new".
func (r ItemRequest) ConditionEnum() (enums.ItemCondition, error) {
	if condition, ok := enums.ResolveItemCondition(r.Condition); ok {
		return condition, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown item condition "+r.Condition)
}

// Validate enforces the cross-field rules the struct tags cannot express.
func (r ItemRequest) Validate() error {
	if !r.PickupEnd.After(r.PickupStart) {
		return pkgerrors.New(pkgerrors.CodeValidation, "pickup window must end after it starts")
	}
	return nil
}

// StatsResponse pairs the ledger aggregates with the formatted impact line.
type StatsResponse struct {
	Count           int     `json:"count"`
	CO2SavedKg      float64 `json:"co2_saved_kg"`
	CO2SavedDisplay string  `json:"co2_saved_display"`
	Message         string  `json:"message"`
}
