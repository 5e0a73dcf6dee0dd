// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a printable item in the catalog (mug, t-shirt, poster...).
// TemplateID selects the print-area geometry used for placement checks.
type Product struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	TemplateID     string    `json:"templateId"`
	Category       string    `json:"category"`
	BasePricePence int       `json:"basePricePence"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProductVariant is a purchasable option of a product, such as a size or colour.
type ProductVariant struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	PricePence int       `json:"pricePence"`
	CreatedAt  time.Time `json:"createdAt"`
}
