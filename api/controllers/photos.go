package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freefind/freefind-backend/api/responses"
	"github.com/freefind/freefind-backend/internal/photos"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/logger"
)

func photoIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "photoId"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo id is required")
	}
	return id, nil
}

// PhotoUpload stores raw photo bytes and returns the id to reference on a
// listing.
func PhotoUpload(storage *photos.Storage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if storage == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo storage unavailable"))
			return
		}

		limit := storage.MaxBytes()
		if limit <= 0 {
			limit = 10 * 1024 * 1024
		}
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read photo body"))
			return
		}

		id, err := storage.Save(data)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// PhotoFetch streams the photo bytes back.
func PhotoFetch(storage *photos.Storage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if storage == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo storage unavailable"))
			return
		}

		id, err := photoIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		data, contentType, err := storage.Load(id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil && logg != nil {
			logg.Warn(ctx, "photo write interrupted")
		}
	}
}

// PhotoDelete removes a stored photo.
func PhotoDelete(storage *photos.Storage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if storage == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo storage unavailable"))
			return
		}

		id, err := photoIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := storage.Delete(id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
