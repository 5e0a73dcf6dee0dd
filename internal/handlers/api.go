// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the mockup, print-quality and watermark
// operations as a JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aiprintly/internal/mockup"
	"aiprintly/internal/models"
	"aiprintly/internal/printarea"
	"aiprintly/internal/quality"
	"aiprintly/internal/watermark"
)

// Request body limits.
const (
	maxJSONBytes      = 1 << 20
	maxWatermarkBytes = 20 << 20
)

// ObjectFetcher downloads raw objects from storage.
type ObjectFetcher interface {
	Download(ctx context.Context, bucket, key string, maxBytes int64) ([]byte, error)
}

// API groups the HTTP handlers and their dependencies.
type API struct {
	products mockup.ProductFinder
	assets   mockup.AssetFinder
	composer *mockup.Composer
	stamper  *watermark.Stamper
	objects  ObjectFetcher // nil when object storage is not configured
}

// NewAPI creates the API handler group. objects may be nil, in which case
// asset previews answer 503.
func NewAPI(products mockup.ProductFinder, assets mockup.AssetFinder, composer *mockup.Composer, stamper *watermark.Stamper, objects ObjectFetcher) *API {
	return &API{
		products: products,
		assets:   assets,
		composer: composer,
		stamper:  stamper,
		objects:  objects,
	}
}

// printAreaResponse is one entry of the print-area listing.
type printAreaResponse struct {
	TemplateID         string          `json:"templateId"`
	Class              printarea.Class `json:"class"`
	Width              int             `json:"width"`
	Height             int             `json:"height"`
	OffsetX            int             `json:"offsetX"`
	OffsetY            int             `json:"offsetY"`
	ProductImageWidth  int             `json:"productImageWidth"`
	ProductImageHeight int             `json:"productImageHeight"`
	MinDPI             int             `json:"minDpi"`
	MinOverlap         float64         `json:"minOverlap"`
}

// PrintAreas lists the geometry and quality thresholds of every template.
func (a *API) PrintAreas(w http.ResponseWriter, r *http.Request) {
	ids := printarea.Templates()
	areas := make([]printAreaResponse, 0, len(ids))
	for _, id := range ids {
		s := printarea.Lookup(id)
		areas = append(areas, printAreaResponse{
			TemplateID:         id,
			Class:              s.Class,
			Width:              s.Width,
			Height:             s.Height,
			OffsetX:            s.OffsetX,
			OffsetY:            s.OffsetY,
			ProductImageWidth:  s.ProductImageWidth,
			ProductImageHeight: s.ProductImageHeight,
			MinDPI:             s.Class.MinDPI(),
			MinOverlap:         s.Class.MinOverlap(),
		})
	}
	writeJSON(w, http.StatusOK, areas)
}

// validateRequest is the body of POST /api/mockups/validate.
type validateRequest struct {
	ProductID uuid.UUID        `json:"productId"`
	AssetID   uuid.UUID        `json:"assetId"`
	Placement models.Placement `json:"placement"`
}

// ValidateQuality checks whether an asset placed on a product will print
// well. A missing asset is reported inside the validation record.
func (a *API) ValidateQuality(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateIDs(namedID{"productId", req.ProductID}, namedID{"assetId", req.AssetID}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validatePlacement(req.Placement); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := a.products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		slog.Error("find product failed", "product_id", req.ProductID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	asset, err := a.assets.FindByID(r.Context(), req.AssetID)
	if err != nil {
		slog.Error("find asset failed", "asset_id", req.AssetID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load asset")
		return
	}

	writeJSON(w, http.StatusOK, quality.Validate(asset, req.Placement, product.TemplateID))
}

// composeRequest is the body of POST /api/mockups.
type composeRequest struct {
	ProductID      uuid.UUID        `json:"productId"`
	VariantID      uuid.UUID        `json:"variantId"`
	AssetID        uuid.UUID        `json:"assetId"`
	Placement      models.Placement `json:"placement"`
	EnforceQuality bool             `json:"enforceQuality"`
}

// qualityRejection is the 422 body returned when the quality gate fails.
type qualityRejection struct {
	Error      string                   `json:"error"`
	Validation models.QualityValidation `json:"validation"`
}

// ComposeMockup returns a renderable mockup reference. With enforceQuality
// set, a placement that fails validation is answered with 422 and nothing
// is composed.
func (a *API) ComposeMockup(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateIDs(
		namedID{"productId", req.ProductID},
		namedID{"variantId", req.VariantID},
		namedID{"assetId", req.AssetID},
	); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validatePlacement(req.Placement); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if req.EnforceQuality && !a.checkQuality(w, r, req) {
		return
	}

	result, err := a.composer.Compose(r.Context(), mockup.Request{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		AssetID:   req.AssetID,
		Placement: req.Placement,
	})
	if errors.Is(err, mockup.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, mockup.ErrNoImageURL) {
		writeError(w, http.StatusServiceUnavailable, "asset storage is not configured")
		return
	}
	if err != nil {
		slog.Error("compose mockup failed", "product_id", req.ProductID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not compose mockup")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// checkQuality runs the quality gate for a compose request. It writes the
// response and returns false when the request must stop.
func (a *API) checkQuality(w http.ResponseWriter, r *http.Request, req composeRequest) bool {
	product, err := a.products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		slog.Error("find product failed", "product_id", req.ProductID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load product")
		return false
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return false
	}

	asset, err := a.assets.FindByID(r.Context(), req.AssetID)
	if err != nil {
		slog.Error("find asset failed", "asset_id", req.AssetID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load asset")
		return false
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return false
	}

	v := quality.Validate(asset, req.Placement, product.TemplateID)
	if !v.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, qualityRejection{
			Error:      "design does not meet print quality requirements",
			Validation: v,
		})
		return false
	}
	return true
}

// Watermark stamps the raw image in the request body and returns a PNG.
func (a *API) Watermark(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWatermarkBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image is too large (max 20 MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "image body is required")
		return
	}

	out, err := a.stamper.Stamp(body)
	if errors.Is(err, watermark.ErrTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if errors.Is(err, watermark.ErrInvalidImage) {
		writeError(w, http.StatusBadRequest, "body is not a supported image")
		return
	}
	if err != nil {
		slog.Error("watermark failed", "bytes", len(body), "error", err)
		writeError(w, http.StatusInternalServerError, "could not watermark image")
		return
	}

	writeImage(w, out)
}

// AssetPreview downloads a stored asset and returns it watermarked.
func (a *API) AssetPreview(w http.ResponseWriter, r *http.Request) {
	if a.objects == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := a.assets.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find asset failed", "asset_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load asset")
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	data, err := a.objects.Download(r.Context(), asset.Bucket, asset.StorageKey, maxWatermarkBytes)
	if err != nil {
		slog.Error("download asset failed", "asset_id", id, "bucket", asset.Bucket, "error", err)
		writeError(w, http.StatusBadGateway, "could not fetch asset")
		return
	}

	out, err := a.stamper.Stamp(data)
	if errors.Is(err, watermark.ErrInvalidImage) || errors.Is(err, watermark.ErrTooLarge) {
		writeError(w, http.StatusUnprocessableEntity, "stored asset is not a supported image")
		return
	}
	if err != nil {
		slog.Error("watermark asset failed", "asset_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not watermark asset")
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=300")
	writeImage(w, out)
}

// decodeJSON reads a size-limited JSON body into dst. On failure it writes
// a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a {"error": msg} JSON response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeImage writes a stamped PNG.
func writeImage(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", watermark.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
