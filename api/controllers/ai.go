package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/freefind/freefind-backend/api/responses"
	"github.com/freefind/freefind-backend/api/validators"
	"github.com/freefind/freefind-backend/pkg/aibackend"
	"github.com/freefind/freefind-backend/pkg/enums"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/logger"
)

type analyzeImageRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	Task        string `json:"task" validate:"omitempty,oneof=categorize analyze"`
}

type analyzeTextRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
	Task string `json:"task" validate:"omitempty,oneof=categorize analyze"`
}

// suggestionResponse maps the model output onto canonical enum values so
// clients can prefill a listing form directly.
type suggestionResponse struct {
	Category    enums.ItemCategory  `json:"category"`
	Condition   enums.ItemCondition `json:"condition"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Confidence  *float64            `json:"confidence,omitempty"`
}

func suggestionFromResult(result *aibackend.AnalysisResult) suggestionResponse {
	suggestion := suggestionResponse{
		Category:   enums.ItemCategoryOther,
		Condition:  enums.ItemConditionGood,
		Confidence: result.Confidence,
	}
	if result.Category != nil {
		suggestion.Category = enums.MapItemCategory(*result.Category)
	}
	if result.Condition != nil {
		suggestion.Condition = enums.MapItemCondition(*result.Condition)
	}
	if result.Title != nil {
		suggestion.Title = *result.Title
	}
	if result.Description != nil {
		suggestion.Description = *result.Description
	}
	return suggestion
}

// AIAnalyzeImage suggests listing metadata for a photo.
func AIAnalyzeImage(client *aibackend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body analyzeImageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		image, err := base64.StdEncoding.DecodeString(body.ImageBase64)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image must be base64 encoded"))
			return
		}

		result, err := client.AnalyzeImage(ctx, image, body.Task)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestionFromResult(result))
	}
}

// AIAnalyzeText suggests listing metadata for free text.
func AIAnalyzeText(client *aibackend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body analyzeTextRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := client.AnalyzeText(ctx, body.Text, body.Task)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestionFromResult(result))
	}
}
