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

// AssetStore handles asset metadata lookups. The pixels themselves live in
// object storage.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

const assetColumns = `id, filename, content_type, width, height, bucket,
	storage_key, storage_url, source, created_at`

func scanAsset(scanner interface{ Scan(...any) error }) (*models.Asset, error) {
	var a models.Asset
	err := scanner.Scan(
		&a.ID, &a.Filename, &a.ContentType, &a.Width, &a.Height, &a.Bucket,
		&a.StorageKey, &a.StorageURL, &a.Source, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new asset record and returns it with the generated ID.
func (s *AssetStore) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	source := a.Source
	if source == "" {
		source = models.AssetSourceUpload
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO assets (filename, content_type, width, height, bucket,
			storage_key, storage_url, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+assetColumns,
		a.Filename, a.ContentType, a.Width, a.Height, a.Bucket,
		a.StorageKey, a.StorageURL, source,
	)
	created, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single asset by its UUID. Returns (nil, nil) if absent.
func (s *AssetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return a, nil
}
