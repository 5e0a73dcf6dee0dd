// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package printarea holds the static print-area geometry for every product
// template. Each entry records where the printable region sits on the
// product's backing image and which product class it belongs to. Unknown
// template ids resolve to Default instead of failing.
package printarea

import (
	"fmt"
	"sort"
	"strings"
)

// Class is the declared product class of a template. It decides the
// print-quality thresholds.
type Class string

const (
	ClassStandard  Class = "standard"
	ClassPoster    Class = "poster"
	ClassCanvas    Class = "canvas"
	ClassStorybook Class = "storybook"
)

// MinDPI returns the minimum effective DPI required for the class.
func (c Class) MinDPI() int {
	switch c {
	case ClassPoster, ClassCanvas, ClassStorybook:
		return 300
	default:
		return 150
	}
}

// MinOverlap returns the minimum fraction of the print area a design must cover.
func (c Class) MinOverlap() float64 {
	if c == ClassPoster {
		return 0.9
	}
	return 0.3
}

// Classify derives a class from the template id text using a case-sensitive
// substring test. "poster" takes precedence over "canvas", which takes
// precedence over "storybook".
func Classify(templateID string) Class {
	switch {
	case strings.Contains(templateID, "poster"):
		return ClassPoster
	case strings.Contains(templateID, "canvas"):
		return ClassCanvas
	case strings.Contains(templateID, "storybook"):
		return ClassStorybook
	default:
		return ClassStandard
	}
}

// Spec is the immutable print-area geometry for one product template.
// Width and Height are print-area pixels at 300 DPI; the offsets place the
// print area inside the backing product image.
type Spec struct {
	Class              Class `json:"class"`
	Width              int   `json:"width"`
	Height             int   `json:"height"`
	OffsetX            int   `json:"offsetX"`
	OffsetY            int   `json:"offsetY"`
	ProductImageWidth  int   `json:"productImageWidth"`
	ProductImageHeight int   `json:"productImageHeight"`
}

// Validate checks that all dimensions are positive and that the print area
// fits inside the backing image.
func (s Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.ProductImageWidth <= 0 || s.ProductImageHeight <= 0 {
		return fmt.Errorf("print area has non-positive dimensions: %dx%d on %dx%d",
			s.Width, s.Height, s.ProductImageWidth, s.ProductImageHeight)
	}
	if s.OffsetX < 0 || s.OffsetY < 0 {
		return fmt.Errorf("print area has negative offset: (%d, %d)", s.OffsetX, s.OffsetY)
	}
	if s.OffsetX+s.Width > s.ProductImageWidth || s.OffsetY+s.Height > s.ProductImageHeight {
		return fmt.Errorf("print area %dx%d at (%d, %d) exceeds backing image %dx%d",
			s.Width, s.Height, s.OffsetX, s.OffsetY, s.ProductImageWidth, s.ProductImageHeight)
	}
	return nil
}

// Default is returned for template ids that are not in the catalog.
var Default = Spec{
	Class:              ClassStandard,
	Width:              1200,
	Height:             1200,
	ProductImageWidth:  1200,
	ProductImageHeight: 1200,
}

// catalog maps template ids to their geometry.
var catalog = map[string]Spec{
	"mug-11oz":        {Class: ClassStandard, Width: 2475, Height: 1155, OffsetX: 262, OffsetY: 922, ProductImageWidth: 3000, ProductImageHeight: 3000},
	"mug-15oz":        {Class: ClassStandard, Width: 2550, Height: 1275, OffsetX: 225, OffsetY: 862, ProductImageWidth: 3000, ProductImageHeight: 3000},
	"tshirt-front":    {Class: ClassStandard, Width: 3600, Height: 4800, OffsetX: 1200, OffsetY: 900, ProductImageWidth: 6000, ProductImageHeight: 7000},
	"tshirt-back":     {Class: ClassStandard, Width: 3600, Height: 4800, OffsetX: 1200, OffsetY: 700, ProductImageWidth: 6000, ProductImageHeight: 7000},
	"hoodie-front":    {Class: ClassStandard, Width: 3300, Height: 2700, OffsetX: 1350, OffsetY: 1500, ProductImageWidth: 6000, ProductImageHeight: 7000},
	"tote-bag":        {Class: ClassStandard, Width: 3000, Height: 3300, OffsetX: 750, OffsetY: 1800, ProductImageWidth: 4500, ProductImageHeight: 5400},
	"poster-a4":       {Class: ClassPoster, Width: 2480, Height: 3508, ProductImageWidth: 2480, ProductImageHeight: 3508},
	"poster-a3":       {Class: ClassPoster, Width: 3508, Height: 4961, ProductImageWidth: 3508, ProductImageHeight: 4961},
	"poster-a2":       {Class: ClassPoster, Width: 4961, Height: 7016, ProductImageWidth: 4961, ProductImageHeight: 7016},
	"canvas-12x16":    {Class: ClassCanvas, Width: 3600, Height: 4800, OffsetX: 150, OffsetY: 150, ProductImageWidth: 3900, ProductImageHeight: 5100},
	"canvas-16x20":    {Class: ClassCanvas, Width: 4800, Height: 6000, OffsetX: 150, OffsetY: 150, ProductImageWidth: 5100, ProductImageHeight: 6300},
	"storybook-page":  {Class: ClassStorybook, Width: 2550, Height: 2550, OffsetX: 38, OffsetY: 38, ProductImageWidth: 2625, ProductImageHeight: 2625},
	"storybook-cover": {Class: ClassStorybook, Width: 2625, Height: 2625, ProductImageWidth: 2625, ProductImageHeight: 2625},
}

// Lookup returns the geometry for templateID, or Default when unknown.
func Lookup(templateID string) Spec {
	if s, ok := catalog[templateID]; ok {
		return s
	}
	return Default
}

// Templates returns every known template id in sorted order.
func Templates() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
