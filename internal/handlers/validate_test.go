package handlers

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"aiprintly/internal/models"
)

func TestValidatePlacement(t *testing.T) {
	at := func(x, y, scale, rotation float64) models.Placement {
		return models.Placement{Position: models.Position{X: x, Y: y}, Scale: scale, Rotation: rotation}
	}

	tests := []struct {
		name      string
		placement models.Placement
		wantError bool
	}{
		{"valid", at(10, 20, 1, 0), false},
		{"negative position allowed", at(-50, -50, 0.5, 0), false},
		{"max scale", at(0, 0, 10, 0), false},
		{"full turn", at(0, 0, 1, 360), false},
		{"negative full turn", at(0, 0, 1, -360), false},
		{"zero scale", at(0, 0, 0, 0), true},
		{"negative scale", at(0, 0, -1, 0), true},
		{"scale too large", at(0, 0, 10.5, 0), true},
		{"rotation too large", at(0, 0, 1, 361), true},
		{"rotation too small", at(0, 0, 1, -361), true},
		{"nan position", at(math.NaN(), 0, 1, 0), true},
		{"infinite rotation", at(0, 0, 1, math.Inf(1)), true},
		{"nan scale", at(0, 0, math.NaN(), 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validatePlacement(tt.placement)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateIDs(t *testing.T) {
	if msg := validateIDs(namedID{"productId", uuid.New()}, namedID{"assetId", uuid.New()}); msg != "" {
		t.Errorf("unexpected error: %s", msg)
	}
	if msg := validateIDs(namedID{"productId", uuid.New()}, namedID{"assetId", uuid.Nil}); msg != "assetId is required." {
		t.Errorf("got %q, want assetId error", msg)
	}
}
