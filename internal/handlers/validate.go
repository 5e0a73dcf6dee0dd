package handlers

import (
	"math"

	"github.com/google/uuid"

	"aiprintly/internal/models"
)

// Placement limits accepted at the HTTP boundary.
const (
	maxScale    = 10
	maxRotation = 360
)

// validatePlacement checks a placement and returns the first error found.
func validatePlacement(p models.Placement) string {
	for _, v := range []float64{p.Position.X, p.Position.Y, p.Scale, p.Rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "Placement values must be finite numbers."
		}
	}
	if p.Scale <= 0 {
		return "Placement scale must be greater than zero."
	}
	if p.Scale > maxScale {
		return "Placement scale is too large (max 10)."
	}
	if p.Rotation < -maxRotation || p.Rotation > maxRotation {
		return "Placement rotation must be between -360 and 360 degrees."
	}
	return ""
}

// validateIDs checks that every named id is set and returns the first error found.
func validateIDs(ids ...namedID) string {
	for _, id := range ids {
		if id.value == uuid.Nil {
			return id.name + " is required."
		}
	}
	return ""
}

type namedID struct {
	name  string
	value uuid.UUID
}
