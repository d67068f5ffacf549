package donations

import (
	"time"

	"github.com/freefind/freefind-backend/pkg/enums"
	"github.com/google/uuid"
)

// ItemRecord is a single donation listing and its lifecycle status. Records
// are owned exclusively by the Ledger; callers receive copies.
type ItemRecord struct {
	ID                  uuid.UUID            `json:"id"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Category            enums.ItemCategory   `json:"category"`
	Condition           enums.ItemCondition  `json:"condition"`
	Photos              []string             `json:"photos"`
	Location            string               `json:"location"`
	PickupStart         time.Time            `json:"pickup_start"`
	PickupEnd           time.Time            `json:"pickup_end"`
	DonorName           string               `json:"donor_name"`
	DonorPhone          string               `json:"donor_phone"`
	Status              enums.DonationStatus `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	EstimatedCO2Savings *float64             `json:"estimated_co2_savings,omitempty"`
}

// Stats is the aggregate snapshot handed back after every mutation so the
// orchestration layer can forward it to the account model.
type Stats struct {
	Count      int     `json:"count"`
	CO2SavedKg float64 `json:"co2_saved_kg"`
}
