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
	"aiprintly/internal/slug"
)

// ProductStore handles product and variant lookups.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, template_id, category, base_price_pence, created_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(&p.ID, &p.Name, &p.Slug, &p.TemplateID, &p.Category, &p.BasePricePence, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and returns it with the generated ID.
// An empty slug is derived from the name.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	productSlug := p.Slug
	if productSlug == "" {
		productSlug = slug.Generate(p.Name)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, template_id, category, base_price_pence)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		p.Name, productSlug, p.TemplateID, p.Category, p.BasePricePence,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// FindByID retrieves a product by its UUID. Returns (nil, nil) if absent.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by its URL slug. Returns (nil, nil) if absent.
func (s *ProductStore) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}
