// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Position is a pixel offset within the product canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement describes where and how a design sits on a product. Scale
// multiplies the asset's native pixel dimensions; Rotation is in degrees.
type Placement struct {
	Position Position `json:"position"`
	Scale    float64  `json:"scale"`
	Rotation float64  `json:"rotation"`
}

// QualityValidation is the outcome of a print-quality check. It is computed
// per request and never persisted. Issues is empty iff IsValid is true.
type QualityValidation struct {
	IsValid            bool     `json:"isValid"`
	EffectiveDPI       int      `json:"effectiveDpi"`
	MinRequiredDPI     int      `json:"minRequiredDpi"`
	OverlapPercentage  float64  `json:"overlapPercentage"`
	MinRequiredOverlap float64  `json:"minRequiredOverlap"`
	Issues             []string `json:"issues"`
}

// MockupProvider tags who renders the final mockup pixels.
type MockupProvider string

const (
	MockupProviderClient MockupProvider = "client"
	MockupProviderRemote MockupProvider = "remote"
)

// Valid reports whether p is a known provider tag.
func (p MockupProvider) Valid() bool {
	return p == MockupProviderClient || p == MockupProviderRemote
}

// MockupResult is a renderable reference to a product mockup.
type MockupResult struct {
	MockupURL   string         `json:"mockupUrl"`
	CacheKey    string         `json:"cacheKey"`
	Provider    MockupProvider `json:"provider"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
