package repository

import (
	"context"
	"errors"

	"shopping-list/internal/models"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrInvalidID = errors.New("invalid product ID")
)

// ProductStore is the access contract the handlers depend on. Mutations
// return the stored record after the write so responses never have to guess
// at store-applied state.
type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	ToggleMarked(ctx context.Context, id string) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	AttachImage(ctx context.Context, id string, data []byte, contentType string) (*models.Product, error)
}

// ImageURL is the derived access path for a product's embedded image.
func ImageURL(id string) string {
	return "/products/" + id + "/image"
}
