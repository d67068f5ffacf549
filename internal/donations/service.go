package donations

import (
	"context"
	"fmt"

	"github.com/freefind/freefind-backend/internal/co2"
	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/logger"
	"github.com/google/uuid"
)

// Estimator is the CO2 surface the donation service needs.
type Estimator interface {
	Estimate(ctx context.Context, category enums.ItemCategory, condition enums.ItemCondition, title, description string) co2.Estimate
}

// StatsListener receives the aggregate snapshot after every ledger mutation,
// so account stats stay derived from the ledger rather than counted twice.
type StatsListener func(ctx context.Context, userID uuid.UUID, stats Stats)

// Service defines the behavior needed by the donation controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req ItemRequest) (*ItemRecord, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req ItemRequest) (*ItemRecord, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	Claim(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ItemRecord, error)
	CompletePickup(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ItemRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemRecord, error)
	ListAvailable(ctx context.Context) ([]ItemRecord, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ItemRecord, error)
	Stats(ctx context.Context) (*StatsResponse, error)
}

type service struct {
	ledger    *Ledger
	estimator Estimator
	onStats   StatsListener
	logg      *logger.Logger
}

// ServiceParams bundles the dependencies required to build a donation service.
type ServiceParams struct {
	Ledger    *Ledger
	Estimator Estimator
	OnStats   StatsListener
	Logger    *logger.Logger
}

// NewService constructs the donation service.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	return &service{
		ledger:    params.Ledger,
		estimator: params.Estimator,
		onStats:   params.OnStats,
		logg:      params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req ItemRequest) (*ItemRecord, error) {
	record, err := s.recordFromRequest(req)
	if err != nil {
		return nil, err
	}

	estimate := s.estimate(ctx, record)
	record.EstimatedCO2Savings = &estimate.Kilograms

	added, stats, err := s.ledger.Add(record)
	if err != nil {
		s.warnStorage(ctx, err)
		s.notify(ctx, userID, stats)
		return &added, err
	}
	s.notify(ctx, userID, stats)
	return &added, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req ItemRequest) (*ItemRecord, error) {
	current, ok := s.ledger.Get(id)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
	}

	updated, err := s.recordFromRequest(req)
	if err != nil {
		return nil, err
	}

	// Identity and lifecycle fields are not editable.
	updated.ID = current.ID
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt

	// Re-estimate when the inputs that drive the figure changed.
	if updated.Category != current.Category || updated.Condition != current.Condition {
		estimate := s.estimate(ctx, updated)
		updated.EstimatedCO2Savings = &estimate.Kilograms
	} else {
		updated.EstimatedCO2Savings = current.EstimatedCO2Savings
	}

	stats, err := s.ledger.Update(updated)
	if err != nil {
		s.warnStorage(ctx, err)
		s.notify(ctx, userID, stats)
		return &updated, err
	}
	s.notify(ctx, userID, stats)
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	stats, err := s.ledger.Delete(id)
	if err != nil {
		s.warnStorage(ctx, err)
		s.notify(ctx, userID, stats)
		return err
	}
	s.notify(ctx, userID, stats)
	return nil
}

func (s *service) Claim(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ItemRecord, error) {
	record, stats, err := s.ledger.Claim(id)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeStorage {
			s.warnStorage(ctx, err)
			s.notify(ctx, userID, stats)
			return &record, err
		}
		return nil, err
	}
	s.notify(ctx, userID, stats)
	return &record, nil
}

func (s *service) CompletePickup(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ItemRecord, error) {
	record, stats, err := s.ledger.CompletePickup(id)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeStorage {
			s.warnStorage(ctx, err)
			s.notify(ctx, userID, stats)
			return &record, err
		}
		return nil, err
	}
	s.notify(ctx, userID, stats)
	return &record, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemRecord, error) {
	record, ok := s.ledger.Get(id)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
	}
	return &record, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]ItemRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ledger.Available(), nil
}

// ListMine returns the caller's donations. Listings do not carry an owner id
// yet, so every session currently sees the whole ledger.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ItemRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ledger.MyItems(), nil
}

func (s *service) Stats(ctx context.Context) (*StatsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stats := s.ledger.Stats()
	return &StatsResponse{
		Count:           stats.Count,
		CO2SavedKg:      stats.CO2SavedKg,
		CO2SavedDisplay: co2.FormatSavings(stats.CO2SavedKg),
		Message:         co2.SavingsMessage(stats.CO2SavedKg),
	}, nil
}

func (s *service) recordFromRequest(req ItemRequest) (ItemRecord, error) {
	if err := req.Validate(); err != nil {
		return ItemRecord{}, err
	}
	category, err := req.CategoryEnum()
	if err != nil {
		return ItemRecord{}, err
	}
	condition, err := req.ConditionEnum()
	if err != nil {
		return ItemRecord{}, err
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	return ItemRecord{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Condition:   condition,
		Photos:      photos,
		Location:    req.Location,
		PickupStart: req.PickupStart,
		PickupEnd:   req.PickupEnd,
		DonorName:   req.DonorName,
		DonorPhone:  req.DonorPhone,
	}, nil
}

func (s *service) estimate(ctx context.Context, record ItemRecord) co2.Estimate {
	if s.estimator == nil {
		return co2.Estimate{Kilograms: co2.LocalEstimate(record.Category, record.Condition), Source: co2.SourceLocal}
	}
	return s.estimator.Estimate(ctx, record.Category, record.Condition, record.Title, record.Description)
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, stats Stats) {
	if s.onStats == nil || userID == uuid.Nil {
		return
	}
	s.onStats(ctx, userID, stats)
}

func (s *service) warnStorage(ctx context.Context, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, "donation ledger persist failed, in-memory state kept")
}
