// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetSource records how an asset came to exist.
type AssetSource string

const (
	AssetSourceUpload    AssetSource = "upload"
	AssetSourceGenerated AssetSource = "generated"
)

// Asset is an image a customer uploaded or generated with an AI provider.
// Metadata is stored in PostgreSQL; the pixels live in object storage.
// Width and Height are the native pixel dimensions.
type Asset struct {
	ID          uuid.UUID   `json:"id"`
	Filename    string      `json:"filename"`
	ContentType string      `json:"contentType"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Bucket      string      `json:"bucket"`
	StorageKey  string      `json:"storageKey"`
	StorageURL  *string     `json:"storageUrl,omitempty"` // set when the pixels live outside our buckets
	Source      AssetSource `json:"source"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// IsImage returns true if the asset is a raster or vector image type.
func (a *Asset) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// HasDimensions reports whether both native dimensions are known.
func (a *Asset) HasDimensions() bool {
	return a.Width > 0 && a.Height > 0
}
