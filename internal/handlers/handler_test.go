// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory finders, a fake object store and a fully wired API.
package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aiprintly/internal/cache"
	"aiprintly/internal/mockup"
	"aiprintly/internal/models"
	"aiprintly/internal/watermark"
)

// fakeProducts is an in-memory mockup.ProductFinder.
type fakeProducts struct {
	byID map[uuid.UUID]*models.Product
	err  error
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

// fakeVariants is an in-memory mockup.VariantFinder.
type fakeVariants struct {
	byID map[uuid.UUID]*models.ProductVariant
}

func (f *fakeVariants) FindByID(_ context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	return f.byID[id], nil
}

// fakeAssets is an in-memory mockup.AssetFinder.
type fakeAssets struct {
	byID map[uuid.UUID]*models.Asset
	err  error
}

func (f *fakeAssets) FindByID(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

// fakeObjects is an in-memory ObjectFetcher keyed by bucket/key.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   int
}

func (f *fakeObjects) Download(_ context.Context, bucket, key string, _ int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

// fakeURLs resolves keys under a fixed CDN host.
type fakeURLs struct{}

func (fakeURLs) FileURL(key string) string { return "https://cdn.test/" + key }

// testEnv holds the fixtures and the wired API.
type testEnv struct {
	API      *API
	Products *fakeProducts
	Variants *fakeVariants
	Assets   *fakeAssets
	Objects  *fakeObjects
	Cache    *cache.MemoryCache

	Poster        *models.Product
	PosterVariant *models.ProductVariant
	Mug           *models.Product
	MugVariant    *models.ProductVariant
	SharpAsset    *models.Asset // meets poster thresholds at scale 1
	TinyAsset     *models.Asset // far below poster thresholds
	BrokenAsset   *models.Asset // stored bytes are not an image
	HugeAsset     *models.Asset // stored header declares 20000x20000
}

// newTestEnv creates a test environment with a small catalog and assets.
// withObjects=false simulates missing object storage.
func newTestEnv(t *testing.T, withObjects bool) *testEnv {
	t.Helper()

	env := &testEnv{
		Poster:      &models.Product{ID: uuid.New(), Name: "A4 Poster", Slug: "a4-poster", TemplateID: "poster-a4", Category: "posters"},
		Mug:         &models.Product{ID: uuid.New(), Name: "Mug", Slug: "mug", TemplateID: "mug-11oz", Category: "mugs"},
		SharpAsset:  &models.Asset{ID: uuid.New(), ContentType: "image/png", Width: 2480, Height: 3508, Bucket: "private", StorageKey: "designs/sharp.png"},
		TinyAsset:   &models.Asset{ID: uuid.New(), ContentType: "image/png", Width: 600, Height: 600, Bucket: "private", StorageKey: "designs/tiny.png"},
		BrokenAsset: &models.Asset{ID: uuid.New(), ContentType: "image/png", Width: 100, Height: 100, Bucket: "private", StorageKey: "designs/broken.png"},
		HugeAsset:   &models.Asset{ID: uuid.New(), ContentType: "image/png", Width: 20000, Height: 20000, Bucket: "private", StorageKey: "designs/huge.png"},
	}
	env.PosterVariant = &models.ProductVariant{ID: uuid.New(), ProductID: env.Poster.ID, Name: "Matte", SKU: "POSTER-A4-MATTE"}
	env.MugVariant = &models.ProductVariant{ID: uuid.New(), ProductID: env.Mug.ID, Name: "White", SKU: "MUG-11-WHITE"}

	env.Products = &fakeProducts{byID: map[uuid.UUID]*models.Product{env.Poster.ID: env.Poster, env.Mug.ID: env.Mug}}
	env.Variants = &fakeVariants{byID: map[uuid.UUID]*models.ProductVariant{env.PosterVariant.ID: env.PosterVariant, env.MugVariant.ID: env.MugVariant}}
	env.Assets = &fakeAssets{byID: map[uuid.UUID]*models.Asset{
		env.SharpAsset.ID:  env.SharpAsset,
		env.TinyAsset.ID:   env.TinyAsset,
		env.BrokenAsset.ID: env.BrokenAsset,
		env.HugeAsset.ID:   env.HugeAsset,
	}}
	env.Cache = cache.NewMemoryCache(time.Hour, 0)

	stamper, err := watermark.New("")
	if err != nil {
		t.Fatalf("watermark.New: %v", err)
	}

	composer := mockup.New(env.Products, env.Variants, env.Assets, fakeURLs{}, env.Cache, mockup.Options{
		PreviewBaseURL: "/api/mockups/preview",
	})

	var objects ObjectFetcher
	if withObjects {
		env.Objects = &fakeObjects{objects: map[string][]byte{
			"private/designs/sharp.png":  testPNG(t, 120, 80),
			"private/designs/broken.png": []byte("not an image"),
			"private/designs/huge.png":   pngHeader(20000, 20000),
		}}
		objects = env.Objects
	}

	env.API = NewAPI(env.Products, env.Assets, composer, stamper, objects)
	return env
}

// testPNG encodes a solid mid-grey PNG of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels,
// with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := []byte("IHDR")
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)

	_ = binary.Write(&buf, binary.BigEndian, uint32(len(chunk)-4))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
