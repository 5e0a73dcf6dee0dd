// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL slugs and stock-keeping codes from catalog names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents returns a transformer that strips combining marks, so
// "Café" becomes "Cafe". Transformers carry state, so build one per call.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Generate creates a URL-friendly slug from the given string. Whitespace,
// hyphens, underscores and slashes separate words; other punctuation is
// dropped.
// Example: "Café Mug / 11oz!" → "cafe-mug-11oz"
func Generate(s string) string {
	folded, _, err := transform.String(foldAccents(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	separate := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if separate && b.Len() > 0 {
				b.WriteByte('-')
			}
			separate = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_', r == '/':
			separate = true
		}
	}
	return b.String()
}

// SKU joins the slugs of parts into an upper-case stock-keeping code.
// Empty parts are skipped.
// Example: SKU("Classic Mug", "White 11oz") → "CLASSIC-MUG-WHITE-11OZ"
func SKU(parts ...string) string {
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Generate(p); s != "" {
			codes = append(codes, strings.ToUpper(s))
		}
	}
	return strings.Join(codes, "-")
}
