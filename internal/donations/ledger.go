// Package donations holds the donation ledger: the ordered, file-persisted
// collection of every item record in the system.
package donations

import (
	"sync"
	"time"

	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/jsonstore"
	"github.com/google/uuid"
)

// Ledger keeps the full record sequence in memory and rewrites the backing
// document on every mutation. In-memory state stays authoritative when a
// persist fails; such failures surface as CodeStorage errors alongside the
// applied mutation.
type Ledger struct {
	mu    sync.Mutex
	items []ItemRecord
	store *jsonstore.Store[[]ItemRecord]
}

// NewLedger loads the existing document (missing or corrupt loads as empty).
func NewLedger(store *jsonstore.Store[[]ItemRecord]) *Ledger {
	return &Ledger{
		items: store.Load(),
		store: store,
	}
}

// Add appends a record, assigning identity and creation time. The record
// starts as available unless a valid status was already set.
func (l *Ledger) Add(record ItemRecord) (ItemRecord, Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if !record.Status.IsValid() {
		record.Status = enums.DonationStatusAvailable
	}
	if record.Photos == nil {
		record.Photos = []string{}
	}

	l.items = append(l.items, record)
	return record, l.statsLocked(), l.persistLocked()
}

// Update replaces the record with a matching id in place, preserving its
// position. Unknown ids no-op by contract.
func (l *Ledger) Update(record ItemRecord) (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID == record.ID {
			l.items[i] = record
			return l.statsLocked(), l.persistLocked()
		}
	}
	return l.statsLocked(), nil
}

// Delete removes every record with the id (expected exactly one).
func (l *Ledger) Delete(id uuid.UUID) (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	removed := false
	for _, item := range l.items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	l.items = kept
	if !removed {
		return l.statsLocked(), nil
	}
	return l.statsLocked(), l.persistLocked()
}

// Claim moves an available record to claimed.
func (l *Ledger) Claim(id uuid.UUID) (ItemRecord, Stats, error) {
	return l.transition(id, enums.DonationStatusClaimed)
}

// CompletePickup moves a record to the terminal picked_up state. The owner
// shortcut from available directly to picked_up is allowed.
func (l *Ledger) CompletePickup(id uuid.UUID) (ItemRecord, Stats, error) {
	return l.transition(id, enums.DonationStatusPickedUp)
}

func (l *Ledger) transition(id uuid.UUID, next enums.DonationStatus) (ItemRecord, Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		current := l.items[i].Status
		if !current.CanTransitionTo(next) {
			return ItemRecord{}, l.statsLocked(), pkgerrors.New(
				pkgerrors.CodeStateConflict,
				"donation cannot move from "+current.String()+" to "+next.String(),
			)
		}
		l.items[i].Status = next
		return l.items[i], l.statsLocked(), l.persistLocked()
	}
	return ItemRecord{}, l.statsLocked(), pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
}

// Get returns a copy of the record with the id.
func (l *Ledger) Get(id uuid.UUID) (ItemRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return ItemRecord{}, false
}

// Available returns the records still open for claiming, recomputed per call.
func (l *Ledger) Available() []ItemRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []ItemRecord
	for _, item := range l.items {
		if item.Status == enums.DonationStatusAvailable {
			out = append(out, item)
		}
	}
	return out
}

// MyItems returns the full sequence in insertion order. No per-owner filter
// exists yet; every session sees every donation as its own.
// TODO: scope by donor identity once listings carry an owner account id.
func (l *Ledger) MyItems() []ItemRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ItemRecord, len(l.items))
	copy(out, l.items)
	return out
}

// TotalCO2Saved sums the present estimates, treating absent as zero.
func (l *Ledger) TotalCO2Saved() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalCO2Locked()
}

// Stats returns the current aggregate snapshot.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statsLocked()
}

func (l *Ledger) statsLocked() Stats {
	return Stats{
		Count:      len(l.items),
		CO2SavedKg: l.totalCO2Locked(),
	}
}

func (l *Ledger) totalCO2Locked() float64 {
	total := 0.0
	for _, item := range l.items {
		if item.EstimatedCO2Savings != nil {
			total += *item.EstimatedCO2Savings
		}
	}
	return total
}

func (l *Ledger) persistLocked() error {
	snapshot := make([]ItemRecord, len(l.items))
	copy(snapshot, l.items)
	if err := l.store.Save(snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist donations")
	}
	return nil
}
