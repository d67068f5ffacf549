package controllers

import (
	"net/http"

	"github.com/freefind/freefind-backend/api/responses"
	"github.com/freefind/freefind-backend/api/validators"
	"github.com/freefind/freefind-backend/internal/co2"
	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/logger"
)

type estimateRequest struct {
	Category    string `json:"category" validate:"required"`
	Condition   string `json:"condition" validate:"required"`
	Title       string `json:"title" validate:"max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type estimateResponse struct {
	Kilograms   float64    `json:"kilograms"`
	Display     string     `json:"display"`
	Message     string     `json:"message"`
	Source      co2.Source `json:"source"`
	Confidence  *float64   `json:"confidence,omitempty"`
	Explanation *string    `json:"explanation,omitempty"`
}

// CO2Estimate returns the savings figure for a category/condition pair
// without creating a listing.
func CO2Estimate(estimator *co2.Estimator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body estimateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, ok := enums.ResolveItemCategory(body.Category)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown item category "+body.Category))
			return
		}
		condition, ok := enums.ResolveItemCondition(body.Condition)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown item condition "+body.Condition))
			return
		}

		estimate := estimator.Estimate(ctx, category, condition, body.Title, body.Description)
		responses.WriteSuccess(w, estimateResponse{
			Kilograms:   estimate.Kilograms,
			Display:     co2.FormatSavings(estimate.Kilograms),
			Message:     co2.SavingsMessage(estimate.Kilograms),
			Source:      estimate.Source,
			Confidence:  estimate.Confidence,
			Explanation: estimate.Explanation,
		})
	}
}
