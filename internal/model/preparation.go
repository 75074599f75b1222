package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies a preparation by the kind of produce it works with.
type Category string

// Valid preparation categories.
const (
	CategoryFruit     Category = "fruit"
	CategoryBread     Category = "bread"
	CategoryVegetable Category = "vegetable"
	CategoryMeat      Category = "meat"
	CategorySeafood   Category = "seafood"
)

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFruit, CategoryBread, CategoryVegetable, CategoryMeat, CategorySeafood:
		return true
	}
	return false
}

// Shift is the meal-service period a preparation applies to.
type Shift string

// Valid shifts.
const (
	ShiftBreakfast Shift = "breakfast"
	ShiftLunch     Shift = "lunch"
	ShiftBoth      Shift = "both"
)

// Valid reports whether the shift is a member of the closed set.
func (s Shift) Valid() bool {
	switch s {
	case ShiftBreakfast, ShiftLunch, ShiftBoth:
		return true
	}
	return false
}

// Preparation represents a recipe with a free-text overview of its steps.
// Individual illustrated steps live in PreparationStep rows.
type Preparation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Category   Category  `json:"category" db:"category"`
	Shift      Shift     `json:"shift" db:"shift"`
	Location   string    `json:"location" db:"location"`
	PictureURL string    `json:"pictureUrl" db:"picture_url"`
	Steps      string    `json:"steps" db:"steps"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// PreparationStep is one ordered instruction within a preparation.
// (PreparationID, StepNumber) pairs are unique; numbers define display
// order but need not be contiguous.
type PreparationStep struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PreparationID uuid.UUID `json:"preparationId" db:"preparation_id"`
	StepNumber    int       `json:"stepNumber" db:"step_number"`
	Description   string    `json:"description" db:"description"`
	PictureURL    string    `json:"pictureUrl" db:"picture_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PreparationForm represents the form payload for creating or updating a
// preparation.
type PreparationForm struct {
	Name     string
	Category Category
	Shift    Shift
	Location string
	Steps    string
}

// Validate checks required fields and enum membership.
func (f *PreparationForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return NewValidationError("Preparation name cannot be empty")
	}
	if !f.Category.Valid() {
		return NewValidationError("Invalid preparation category")
	}
	if !f.Shift.Valid() {
		return NewValidationError("Invalid shift selection")
	}
	if strings.TrimSpace(f.Location) == "" {
		return NewValidationError("Location cannot be empty")
	}
	if strings.TrimSpace(f.Steps) == "" {
		return NewValidationError("Steps cannot be empty")
	}
	return nil
}

// StepInput carries one step's description and optional image, as parsed
// from the multipart creation form.
type StepInput struct {
	Description string
	ImageData   []byte
	ImageName   string
}
