// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package quality checks whether a placed design will print well on a
// product template. It reports the effective DPI of the design at its placed
// scale and an approximate fraction of the print area it covers.
package quality

import (
	"fmt"
	"math"

	"aiprintly/internal/models"
	"aiprintly/internal/printarea"
)

// ReferenceDPI is the resolution print-area pixel dimensions are expressed at.
const ReferenceDPI = 300

const (
	issueAssetNotFound = "Asset not found"
	issueLowCoverage   = "Design should cover more of the print area for best results."
)

// Validate computes the print-quality verdict for asset placed on templateID.
// A nil asset yields an invalid result with a single "Asset not found" issue.
//
// The overlap figure multiplies the width and height ratios of the scaled
// design to the print area and clamps at 1. It ignores position and
// rotation, so a design placed entirely off the print area can still read
// as covering it.
func Validate(asset *models.Asset, placement models.Placement, templateID string) models.QualityValidation {
	area := printarea.Lookup(templateID)
	class := printarea.Classify(templateID)

	result := models.QualityValidation{
		MinRequiredDPI:     class.MinDPI(),
		MinRequiredOverlap: class.MinOverlap(),
		Issues:             []string{},
	}

	if asset == nil {
		result.Issues = append(result.Issues, issueAssetNotFound)
		return result
	}

	scaledWidth := float64(asset.Width) * placement.Scale
	scaledHeight := float64(asset.Height) * placement.Scale

	printWidthInches := float64(area.Width) / ReferenceDPI
	result.EffectiveDPI = int(math.Round(scaledWidth / printWidthInches))

	if result.EffectiveDPI < result.MinRequiredDPI {
		result.Issues = append(result.Issues, fmt.Sprintf(
			"Image resolution is too low (%d DPI). Minimum %d DPI recommended for this product.",
			result.EffectiveDPI, result.MinRequiredDPI,
		))
	}

	coverage := (scaledWidth / float64(area.Width)) * (scaledHeight / float64(area.Height))
	result.OverlapPercentage = math.Min(coverage, 1)

	if result.OverlapPercentage < result.MinRequiredOverlap {
		result.Issues = append(result.Issues, issueLowCoverage)
	}

	result.IsValid = len(result.Issues) == 0
	return result
}
