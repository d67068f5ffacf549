// Package co2 estimates the kilograms of CO2 emissions avoided when an item
// is donated instead of discarded. A remote model provides the primary
// estimate; a fixed lifecycle table serves as the always-available fallback.
package co2

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/freefind/freefind-backend/pkg/aibackend"
	"github.com/freefind/freefind-backend/pkg/enums"
	"github.com/freefind/freefind-backend/pkg/logger"
	"github.com/freefind/freefind-backend/pkg/redis"
	"github.com/shopspring/decimal"
)

// savingsFraction is the assumed share of an item's production footprint
// actually avoided by a second life.
var savingsFraction = decimal.NewFromFloat(0.8)

// baseFootprints holds production-footprint kg CO2e per category.
var baseFootprints = map[enums.ItemCategory]decimal.Decimal{
	enums.ItemCategoryElectronics: decimal.NewFromFloat(150.0),
	enums.ItemCategoryFurniture:   decimal.NewFromFloat(80.0),
	enums.ItemCategoryClothing:    decimal.NewFromFloat(25.0),
	enums.ItemCategorySports:      decimal.NewFromFloat(20.0),
	enums.ItemCategoryKitchenware: decimal.NewFromFloat(15.0),
	enums.ItemCategoryOther:       decimal.NewFromFloat(15.0),
	enums.ItemCategoryToys:        decimal.NewFromFloat(10.0),
	enums.ItemCategoryBooks:       decimal.NewFromFloat(2.5),
}

var conditionMultipliers = map[enums.ItemCondition]decimal.Decimal{
	enums.ItemConditionExcellent: decimal.NewFromFloat(1.0),
	enums.ItemConditionGood:      decimal.NewFromFloat(0.85),
	enums.ItemConditionFair:      decimal.NewFromFloat(0.65),
	enums.ItemConditionPoor:      decimal.NewFromFloat(0.4),
}

// Source identifies which layer produced an estimate.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Estimate is the outcome of an estimation request.
type Estimate struct {
	Kilograms   float64  `json:"kilograms"`
	Source      Source   `json:"source"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Explanation *string  `json:"explanation,omitempty"`
}

// LocalEstimate computes the table-driven fallback:
// baseFootprint(category) * conditionMultiplier(condition) * savingsFraction.
func LocalEstimate(category enums.ItemCategory, condition enums.ItemCondition) float64 {
	base, ok := baseFootprints[category]
	if !ok {
		base = baseFootprints[enums.ItemCategoryOther]
	}
	mult, ok := conditionMultipliers[condition]
	if !ok {
		mult = conditionMultipliers[enums.ItemConditionGood]
	}
	kg, _ := base.Mul(mult).Mul(savingsFraction).Float64()
	return kg
}

// Estimator layers the remote model over the local table.
type Estimator struct {
	client   *aibackend.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewEstimator wires the remote client and optional cache. Both may be nil;
// estimation then always answers from the local table.
func NewEstimator(client *aibackend.Client, cache *redis.Client, cacheTTL time.Duration, logg *logger.Logger) *Estimator {
	return &Estimator{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}
}

// Estimate returns the best available figure for the item. Remote failures of
// any kind fall through to the local table with no retry.
func (e *Estimator) Estimate(ctx context.Context, category enums.ItemCategory, condition enums.ItemCondition, title, description string) Estimate {
	if e == nil || e.client == nil {
		return e.local(category, condition)
	}

	cacheKey := redis.EstimateKey(category.String(), condition.String())
	if cached, err := e.cache.GetCachedEstimate(ctx, cacheKey); err == nil {
		var est Estimate
		if jsonErr := json.Unmarshal([]byte(cached), &est); jsonErr == nil && est.Kilograms >= 0 {
			return est
		}
	} else if !errors.Is(err, redis.ErrNotFound) && e.logg != nil {
		e.logg.Warn(ctx, "co2 estimate cache read failed")
	}

	result, err := e.client.EstimateCO2(ctx, aibackend.EstimateRequest{
		Category:    category.String(),
		Condition:   condition.String(),
		Title:       title,
		Description: description,
	})
	if err != nil || result.CO2Savings < 0 {
		if e.logg != nil {
			e.logg.Warn(ctx, "remote co2 estimation unavailable, using local table")
		}
		return e.local(category, condition)
	}

	est := Estimate{
		Kilograms:   result.CO2Savings,
		Source:      SourceRemote,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
	}
	if payload, jsonErr := json.Marshal(est); jsonErr == nil {
		if cacheErr := e.cache.SetCachedEstimate(ctx, cacheKey, string(payload), e.cacheTTL); cacheErr != nil && e.logg != nil {
			e.logg.Warn(ctx, "co2 estimate cache write failed")
		}
	}
	return est
}

func (e *Estimator) local(category enums.ItemCategory, condition enums.ItemCondition) Estimate {
	return Estimate{
		Kilograms: LocalEstimate(category, condition),
		Source:    SourceLocal,
	}
}
