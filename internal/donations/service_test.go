package donations

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/freefind/freefind-backend/internal/co2"
	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/jsonstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEstimator struct {
	estimate co2.Estimate
	calls    int
}

func (f *fixedEstimator) Estimate(ctx context.Context, category enums.ItemCategory, condition enums.ItemCondition, title, description string) co2.Estimate {
	f.calls++
	return f.estimate
}

type statsRecorder struct {
	userIDs []uuid.UUID
	stats   []Stats
}

func (s *statsRecorder) listen(ctx context.Context, userID uuid.UUID, stats Stats) {
	s.userIDs = append(s.userIDs, userID)
	s.stats = append(s.stats, stats)
}

func newServiceFixture(t *testing.T, estimate co2.Estimate) (Service, *fixedEstimator, *statsRecorder) {
	t.Helper()
	ledger := NewLedger(jsonstore.New[[]ItemRecord](filepath.Join(t.TempDir(), "donations.json")))
	est := &fixedEstimator{estimate: estimate}
	recorder := &statsRecorder{}
	svc, err := NewService(ServiceParams{
		Ledger:    ledger,
		Estimator: est,
		OnStats:   recorder.listen,
	})
	require.NoError(t, err)
	return svc, est, recorder
}

func itemRequest(category, condition string) ItemRequest {
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	return ItemRequest{
		Title:       "Standing desk",
		Description: "height adjustable",
		Category:    category,
		Condition:   condition,
		Location:    "Marrickville",
		PickupStart: start,
		PickupEnd:   start.Add(2 * time.Hour),
		DonorName:   "Alex",
		DonorPhone:  "0400 111 222",
	}
}

func TestCreateEstimatesAndNotifies(t *testing.T) {
	svc, est, recorder := newServiceFixture(t, co2.Estimate{Kilograms: 61.0, Source: co2.SourceRemote})
	userID := uuid.New()

	record, err := svc.Create(context.Background(), userID, itemRequest("furniture", "good"))
	require.NoError(t, err)
	require.NotNil(t, record.EstimatedCO2Savings)
	assert.InDelta(t, 61.0, *record.EstimatedCO2Savings, 1e-9)
	assert.Equal(t, 1, est.calls)

	require.Len(t, recorder.stats, 1)
	assert.Equal(t, userID, recorder.userIDs[0])
	assert.Equal(t, 1, recorder.stats[0].Count)
}

func TestCreateAcceptsAliases(t *testing.T) {
	svc, _, _ := newServiceFixture(t, co2.Estimate{Kilograms: 1})

	record, err := svc.Create(context.Background(), uuid.New(), itemRequest("Sports & Outdoors", "like new"))
	require.NoError(t, err)
	assert.Equal(t, enums.ItemCategorySports, record.Category)
	assert.Equal(t, enums.ItemConditionExcellent, record.Condition)
}

func TestCreateRejectsUnknownCategoryAndWindow(t *testing.T) {
	svc, _, _ := newServiceFixture(t, co2.Estimate{})

	_, err := svc.Create(context.Background(), uuid.New(), itemRequest("spaceships", "good"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	bad := itemRequest("furniture", "good")
	bad.PickupEnd = bad.PickupStart
	_, err = svc.Create(context.Background(), uuid.New(), bad)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateKeepsIdentityAndReestimatesOnChange(t *testing.T) {
	svc, est, _ := newServiceFixture(t, co2.Estimate{Kilograms: 54.4, Source: co2.SourceLocal})

	record, err := svc.Create(context.Background(), uuid.New(), itemRequest("furniture", "good"))
	require.NoError(t, err)
	require.Equal(t, 1, est.calls)

	// Same category/condition: no new estimate.
	req := itemRequest("furniture", "good")
	req.Title = "Renamed desk"
	updated, err := svc.Update(context.Background(), uuid.New(), record.ID, req)
	require.NoError(t, err)
	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, record.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 1, est.calls)

	est.estimate = co2.Estimate{Kilograms: 13.0, Source: co2.SourceLocal}
	req.Category = "clothing"
	updated, err = svc.Update(context.Background(), uuid.New(), record.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, est.calls)
	require.NotNil(t, updated.EstimatedCO2Savings)
	assert.InDelta(t, 13.0, *updated.EstimatedCO2Savings, 1e-9)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newServiceFixture(t, co2.Estimate{})
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), itemRequest("furniture", "good"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestClaimAndPickupNotifyListener(t *testing.T) {
	svc, _, recorder := newServiceFixture(t, co2.Estimate{Kilograms: 2})
	userID := uuid.New()

	record, err := svc.Create(context.Background(), userID, itemRequest("books", "good"))
	require.NoError(t, err)

	claimed, err := svc.Claim(context.Background(), userID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DonationStatusClaimed, claimed.Status)

	picked, err := svc.CompletePickup(context.Background(), userID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DonationStatusPickedUp, picked.Status)

	assert.Len(t, recorder.stats, 3)
}

func TestStatsResponseFormatsImpact(t *testing.T) {
	svc, _, _ := newServiceFixture(t, co2.Estimate{Kilograms: 120.0, Source: co2.SourceLocal})

	_, err := svc.Create(context.Background(), uuid.New(), itemRequest("electronics", "excellent"))
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, "120.0 kg", stats.CO2SavedDisplay)
	assert.NotEmpty(t, stats.Message)
}

func TestDeleteNotifies(t *testing.T) {
	svc, _, recorder := newServiceFixture(t, co2.Estimate{Kilograms: 5})
	userID := uuid.New()

	record, err := svc.Create(context.Background(), userID, itemRequest("toys", "fair"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, record.ID))
	require.Len(t, recorder.stats, 2)
	assert.Equal(t, 0, recorder.stats[1].Count)
}
