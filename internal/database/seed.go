package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"aiprintly/internal/slug"
)

// seedProduct is one catalog entry inserted in development. Slugs and
// SKUs are derived from the names.
type seedProduct struct {
	name, templateID, category string
	pricePence                 int
	variants                   []seedVariant
}

type seedVariant struct {
	name       string
	pricePence int
}

var seedCatalog = []seedProduct{
	{"Classic Mug", "mug-11oz", "mugs", 1299, []seedVariant{
		{"White 11oz", 1299},
		{"Black 11oz", 1399},
	}},
	{"Organic T-Shirt", "tshirt-front", "apparel", 1999, []seedVariant{
		{"White / M", 1999},
		{"Navy / L", 1999},
	}},
	{"Art Poster", "poster-a3", "prints", 1799, []seedVariant{
		{"A3 Matte", 1799},
	}},
	{"Stretched Canvas", "canvas-16x20", "prints", 4999, []seedVariant{
		{"16x20 Natural Frame", 4999},
	}},
	{"Personalised Storybook", "storybook-page", "storybooks", 2999, []seedVariant{
		{"Hardback 20 pages", 2999},
	}},
}

// Seed populates the database with a small development catalog.
// It does nothing if products already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("seed check products: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range seedCatalog {
		productSlug := slug.Generate(p.name)
		var productID string
		err := tx.QueryRow(`
			INSERT INTO products (name, slug, template_id, category, base_price_pence)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.name, productSlug, p.templateID, p.category, p.pricePence).Scan(&productID)
		if err != nil {
			return fmt.Errorf("seed insert product %s: %w", productSlug, err)
		}

		for _, v := range p.variants {
			sku := slug.SKU(productSlug, v.name)
			if _, err := tx.Exec(`
				INSERT INTO product_variants (product_id, name, sku, price_pence)
				VALUES ($1, $2, $3, $4)
			`, productID, v.name, sku, v.pricePence); err != nil {
				return fmt.Errorf("seed insert variant %s: %w", sku, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development catalog", "products", len(seedCatalog))
	return nil
}
