// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"aiprintly/internal/models"
)

// VariantStore handles product variant lookups.
type VariantStore struct {
	db *sql.DB
}

// NewVariantStore creates a new VariantStore with the given database connection.
func NewVariantStore(db *sql.DB) *VariantStore {
	return &VariantStore{db: db}
}

const variantColumns = `id, product_id, name, sku, price_pence, created_at`

func scanVariant(scanner interface{ Scan(...any) error }) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := scanner.Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.PricePence, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new variant and returns it with the generated ID.
func (s *VariantStore) Create(ctx context.Context, v *models.ProductVariant) (*models.ProductVariant, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO product_variants (product_id, name, sku, price_pence)
		VALUES ($1, $2, $3, $4)
		RETURNING `+variantColumns,
		v.ProductID, v.Name, v.SKU, v.PricePence,
	)
	created, err := scanVariant(row)
	if err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	return created, nil
}

// FindByID retrieves a variant by its UUID. Returns (nil, nil) if absent.
func (s *VariantStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id)
	v, err := scanVariant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find variant by id: %w", err)
	}
	return v, nil
}

// FindByProductID returns all variants of a product ordered by price.
func (s *VariantStore) FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+variantColumns+`
		FROM product_variants
		WHERE product_id = $1
		ORDER BY price_pence ASC, name ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("find variants by product: %w", err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, *v)
	}
	return variants, rows.Err()
}
