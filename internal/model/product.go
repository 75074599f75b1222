package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents an ingredient or supply in the catalog.
type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SupplierName string    `json:"supplierName" db:"supplier_name"`
	ProductName  string    `json:"productName" db:"product_name"`
	Location     string    `json:"location" db:"location"`
	PictureURL   string    `json:"pictureUrl" db:"picture_url"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductForm represents the form payload for creating or updating a product.
type ProductForm struct {
	SupplierName string
	ProductName  string
	Location     string
	Description  string
}

// Validate checks that all text fields are present.
func (f *ProductForm) Validate() error {
	if strings.TrimSpace(f.SupplierName) == "" {
		return NewValidationError("Supplier name cannot be empty")
	}
	if strings.TrimSpace(f.ProductName) == "" {
		return NewValidationError("Product name cannot be empty")
	}
	if strings.TrimSpace(f.Location) == "" {
		return NewValidationError("Location cannot be empty")
	}
	if strings.TrimSpace(f.Description) == "" {
		return NewValidationError("Description cannot be empty")
	}
	return nil
}
