// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mockup builds renderable mockup references for a design placed on
// a product variant. Pixel compositing happens on the client or on a remote
// renderer; this package resolves the records involved, derives a
// deterministic cache key and encodes everything the renderer needs into a
// preview URL.
package mockup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aiprintly/internal/models"
)

// ErrNotFound is returned when the product, variant or asset does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoImageURL is returned when an asset has no StorageURL and no
// URLResolver is configured, so there is nothing a client could fetch.
var ErrNoImageURL = errors.New("asset has no fetchable url")

// ProductFinder looks up products by id, returning (nil, nil) on miss.
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// VariantFinder looks up product variants by id, returning (nil, nil) on miss.
type VariantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
}

// AssetFinder looks up assets by id, returning (nil, nil) on miss.
type AssetFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
}

// URLResolver turns an object-store key into a fetchable URL.
type URLResolver interface {
	FileURL(key string) string
}

// Cache memoizes mockup results by cache key. Get returns (nil, nil) on miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.MockupResult, error)
	Set(ctx context.Context, key string, result *models.MockupResult) error
}

// Request identifies the records and placement of one mockup.
type Request struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	AssetID   uuid.UUID
	Placement models.Placement
}

// Options configures a Composer.
type Options struct {
	PreviewBaseURL string                // storefront route that renders the preview client-side; not served by this API
	Provider       models.MockupProvider // defaults to MockupProviderClient
}

// Composer resolves mockup requests into MockupResults.
type Composer struct {
	products ProductFinder
	variants VariantFinder
	assets   AssetFinder
	urls     URLResolver
	cache    Cache
	opts     Options
	now      func() time.Time
}

// New creates a Composer. urls may be nil when every asset carries its own
// StorageURL; cache may be nil to disable memoization.
func New(products ProductFinder, variants VariantFinder, assets AssetFinder, urls URLResolver, cache Cache, opts Options) *Composer {
	if opts.Provider == "" {
		opts.Provider = models.MockupProviderClient
	}
	return &Composer{
		products: products,
		variants: variants,
		assets:   assets,
		urls:     urls,
		cache:    cache,
		opts:     opts,
		now:      time.Now,
	}
}

// Compose returns the mockup reference for req. A cached result is returned
// as stored, keeping its original GeneratedAt. Cache failures are logged and
// never fail the request.
func (c *Composer) Compose(ctx context.Context, req Request) (*models.MockupResult, error) {
	product, variant, asset, err := c.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	imgURL, err := c.imageURL(asset)
	if err != nil {
		return nil, err
	}

	key := CacheKey(product.ID, variant.ID, asset.ID, req.Placement)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("mockup cache read failed", "key", key, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	result := &models.MockupResult{
		MockupURL:   c.previewURL(product.TemplateID, imgURL, req.Placement),
		CacheKey:    key,
		Provider:    c.opts.Provider,
		GeneratedAt: c.now().UTC(),
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, result); err != nil {
			slog.Warn("mockup cache write failed", "key", key, "error", err)
		}
	}

	slog.Debug("mockup composed",
		"product_id", product.ID,
		"variant_id", variant.ID,
		"asset_id", asset.ID,
		"template", product.TemplateID,
	)
	return result, nil
}

// resolve loads the product, variant and asset for req. The variant must
// belong to the product.
func (c *Composer) resolve(ctx context.Context, req Request) (*models.Product, *models.ProductVariant, *models.Asset, error) {
	product, err := c.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find product %s: %w", req.ProductID, err)
	}
	if product == nil {
		return nil, nil, nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
	}

	variant, err := c.variants.FindByID(ctx, req.VariantID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find variant %s: %w", req.VariantID, err)
	}
	if variant == nil || variant.ProductID != product.ID {
		return nil, nil, nil, fmt.Errorf("variant %s of product %s: %w", req.VariantID, product.ID, ErrNotFound)
	}

	asset, err := c.assets.FindByID(ctx, req.AssetID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find asset %s: %w", req.AssetID, err)
	}
	if asset == nil {
		return nil, nil, nil, fmt.Errorf("asset %s: %w", req.AssetID, ErrNotFound)
	}

	return product, variant, asset, nil
}

// imageURL prefers the asset's own URL and falls back to the object store.
func (c *Composer) imageURL(asset *models.Asset) (string, error) {
	if asset.StorageURL != nil && *asset.StorageURL != "" {
		return *asset.StorageURL, nil
	}
	if c.urls == nil {
		return "", fmt.Errorf("asset %s: %w", asset.ID, ErrNoImageURL)
	}
	return c.urls.FileURL(asset.StorageKey), nil
}

// previewURL encodes the template, image and placement as query parameters
// of the preview endpoint.
func (c *Composer) previewURL(templateID, imageURL string, p models.Placement) string {
	q := url.Values{}
	q.Set("template", templateID)
	q.Set("image", imageURL)
	q.Set("x", formatFloat(p.Position.X))
	q.Set("y", formatFloat(p.Position.Y))
	q.Set("scale", formatFloat(p.Scale))
	q.Set("rotation", formatFloat(p.Rotation))

	sep := "?"
	if strings.Contains(c.opts.PreviewBaseURL, "?") {
		sep = "&"
	}
	return c.opts.PreviewBaseURL + sep + q.Encode()
}

// CacheKey derives the deterministic cache key for a mockup. Floats use the
// shortest exact representation, so any change to a placement field yields
// a different key.
func CacheKey(productID, variantID, assetID uuid.UUID, p models.Placement) string {
	return productID.String() + ":" + variantID.String() + ":" + assetID.String() + ":" + Fingerprint(p)
}

// Fingerprint renders a placement as x_y_scale_rotation.
func Fingerprint(p models.Placement) string {
	return strings.Join([]string{
		formatFloat(p.Position.X),
		formatFloat(p.Position.Y),
		formatFloat(p.Scale),
		formatFloat(p.Rotation),
	}, "_")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
