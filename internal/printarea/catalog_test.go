// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package printarea

import (
	"sort"
	"testing"
)

func TestLookupUnknownReturnsDefault(t *testing.T) {
	for _, id := range []string{"", "unknown", "MUG-11OZ", "mug-11oz ", "Poster-A4"} {
		t.Run(id, func(t *testing.T) {
			if got := Lookup(id); got != Default {
				t.Errorf("Lookup(%q) = %+v, want Default", id, got)
			}
		})
	}
}

func TestLookupKnown(t *testing.T) {
	s := Lookup("poster-a4")
	if s == Default {
		t.Fatal("poster-a4 should not resolve to Default")
	}
	if s.Width != 2480 || s.Height != 3508 {
		t.Errorf("poster-a4 = %dx%d, want 2480x3508", s.Width, s.Height)
	}
	if s.Class != ClassPoster {
		t.Errorf("poster-a4 class = %q, want %q", s.Class, ClassPoster)
	}
}

func TestDefaultGeometry(t *testing.T) {
	if Default.Width != 1200 || Default.Height != 1200 {
		t.Errorf("Default = %dx%d, want 1200x1200", Default.Width, Default.Height)
	}
	if Default.OffsetX != 0 || Default.OffsetY != 0 {
		t.Errorf("Default offset = (%d, %d), want (0, 0)", Default.OffsetX, Default.OffsetY)
	}
	if err := Default.Validate(); err != nil {
		t.Errorf("Default.Validate: %v", err)
	}
}

// TestCatalogEntriesValid checks the geometry invariant for every built-in entry.
func TestCatalogEntriesValid(t *testing.T) {
	for _, id := range Templates() {
		if err := Lookup(id).Validate(); err != nil {
			t.Errorf("%s: %v", id, err)
		}
	}
}

// TestDeclaredClassMatchesClassify flags any entry whose declared class
// disagrees with the substring policy the validator applies.
func TestDeclaredClassMatchesClassify(t *testing.T) {
	for _, id := range Templates() {
		if declared, inferred := Lookup(id).Class, Classify(id); declared != inferred {
			t.Errorf("%s: declared class %q, Classify gives %q", id, declared, inferred)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		id   string
		want Class
	}{
		{"poster-a4", ClassPoster},
		{"canvas-16x20", ClassCanvas},
		{"storybook-page", ClassStorybook},
		{"mug-11oz", ClassStandard},
		{"", ClassStandard},
		{"poster-canvas-storybook", ClassPoster},
		{"storybook-canvas", ClassCanvas},
		{"my-poster-hybrid", ClassPoster},
		{"POSTER-A4", ClassStandard},
		{"Canvas-16x20", ClassStandard},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Classify(tt.id); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassThresholds(t *testing.T) {
	tests := []struct {
		class      Class
		minDPI     int
		minOverlap float64
	}{
		{ClassStandard, 150, 0.3},
		{ClassPoster, 300, 0.9},
		{ClassCanvas, 300, 0.3},
		{ClassStorybook, 300, 0.3},
		{Class(""), 150, 0.3},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			if got := tt.class.MinDPI(); got != tt.minDPI {
				t.Errorf("MinDPI() = %d, want %d", got, tt.minDPI)
			}
			if got := tt.class.MinOverlap(); got != tt.minOverlap {
				t.Errorf("MinOverlap() = %v, want %v", got, tt.minOverlap)
			}
		})
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"fits exactly", Spec{Width: 100, Height: 100, ProductImageWidth: 100, ProductImageHeight: 100}, false},
		{"fits with offset", Spec{Width: 50, Height: 50, OffsetX: 50, OffsetY: 50, ProductImageWidth: 100, ProductImageHeight: 100}, false},
		{"zero width", Spec{Width: 0, Height: 100, ProductImageWidth: 100, ProductImageHeight: 100}, true},
		{"zero backing", Spec{Width: 10, Height: 10}, true},
		{"negative offset", Spec{Width: 10, Height: 10, OffsetX: -1, ProductImageWidth: 100, ProductImageHeight: 100}, true},
		{"overflows x", Spec{Width: 60, Height: 10, OffsetX: 50, ProductImageWidth: 100, ProductImageHeight: 100}, true},
		{"overflows y", Spec{Width: 10, Height: 60, OffsetY: 50, ProductImageWidth: 100, ProductImageHeight: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTemplatesSorted(t *testing.T) {
	ids := Templates()
	if len(ids) == 0 {
		t.Fatal("expected at least one template")
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("Templates() not sorted: %v", ids)
	}
}
