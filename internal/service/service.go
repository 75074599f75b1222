package service

import (
	"context"

	"github.com/google/uuid"

	"kitchen-guide/internal/model"
)

// ImageUpload carries raw upload bytes with the client-supplied filename.
// A nil *ImageUpload means no file was attached.
type ImageUpload struct {
	Data     []byte
	Filename string
}

// PreparationDetail bundles a preparation with its ordered steps.
type PreparationDetail struct {
	Preparation model.Preparation       `json:"preparation"`
	Steps       []model.PreparationStep `json:"steps"`
}

// ProductService defines operations for product management.
type ProductService interface {
	// Create validates the form, stores the optional image, and inserts
	// the product.
	Create(ctx context.Context, form *model.ProductForm, image *ImageUpload) (*model.Product, error)

	// Get retrieves a single product by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// List retrieves all products, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// Update validates the form and replaces the product's fields,
	// keeping the existing picture when no new image is attached.
	Update(ctx context.Context, id uuid.UUID, form *model.ProductForm, image *ImageUpload) (*model.Product, error)

	// Search finds products by name or supplier.
	Search(ctx context.Context, query string) ([]model.Product, error)
}

// PreparationService defines operations for preparations and their steps.
type PreparationService interface {
	// Create validates the form, stores the optional images, inserts the
	// preparation, and numbers its steps sequentially from one.
	Create(ctx context.Context, form *model.PreparationForm, image *ImageUpload, steps []model.StepInput) (*model.Preparation, error)

	// Get retrieves a preparation with its steps in ascending order.
	Get(ctx context.Context, id uuid.UUID) (*PreparationDetail, error)

	// List retrieves all preparations, newest first.
	List(ctx context.Context) ([]model.Preparation, error)

	// Update validates the form and replaces the preparation's fields,
	// keeping the existing picture when no new image is attached.
	Update(ctx context.Context, id uuid.UUID, form *model.PreparationForm, image *ImageUpload) (*model.Preparation, error)

	// Delete removes a preparation and, by cascade, all of its steps.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddStep appends one step with an explicit step number.
	AddStep(ctx context.Context, preparationID uuid.UUID, stepNumber int, description string, image *ImageUpload) (*model.PreparationStep, error)

	// Search finds preparations by name.
	Search(ctx context.Context, query string) ([]model.Preparation, error)
}

// AuthService defines account registration and authentication.
type AuthService interface {
	// Register validates the form, hashes the password, and creates the
	// account.
	Register(ctx context.Context, form *model.RegisterForm) (*model.User, error)

	// Login verifies the credentials and issues a signed token. Failures
	// are reported generically, without revealing which credential was
	// wrong.
	Login(ctx context.Context, form *model.LoginForm) (string, *model.User, error)
}
