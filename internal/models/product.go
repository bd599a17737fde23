package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a shopping-list item. The photo is embedded in the document
// itself, so deleting the product reclaims the image with it; ImageURL is a
// derived pointer to the image endpoint, not an independent source of truth.
type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Amount    float64            `json:"amount" bson:"amount"`
	Category  string             `json:"category" bson:"category"`
	DateAdded time.Time          `json:"dateAdded" bson:"dateAdded"`
	Marked    bool               `json:"marked" bson:"marked"`
	Comments  string             `json:"comments" bson:"comments"`
	Image     []byte             `json:"-" bson:"image,omitempty"`
	ImageType string             `json:"-" bson:"imageType,omitempty"`
	ImageURL  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// CreateProductRequest is the create payload. Amount is a pointer so a
// missing field can be told apart from an explicit zero. A client-supplied
// id is ignored; the store assigns one.
type CreateProductRequest struct {
	Name      string     `json:"name"`
	Amount    *float64   `json:"amount"`
	Category  string     `json:"category"`
	DateAdded *time.Time `json:"dateAdded"`
	Comments  string     `json:"comments"`
}

func (r *CreateProductRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Amount == nil {
		return &ValidationError{Field: "amount", Message: "amount is required"}
	}
	if r.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	return nil
}

// Product builds the record to insert, applying creation defaults.
func (r *CreateProductRequest) Product() Product {
	p := Product{
		Name:      r.Name,
		Amount:    *r.Amount,
		Category:  r.Category,
		DateAdded: time.Now(),
		Marked:    false,
		Comments:  r.Comments,
	}
	if r.DateAdded != nil {
		p.DateAdded = *r.DateAdded
	}
	return p
}

// ProductUpdate holds the updatable fields of a product. Absent fields are
// left untouched. Marked is deliberately not here: the flag is changed only
// through the toggle endpoint.
type ProductUpdate struct {
	Name      *string    `json:"name,omitempty"`
	Amount    *float64   `json:"amount,omitempty"`
	Category  *string    `json:"category,omitempty"`
	DateAdded *time.Time `json:"dateAdded,omitempty"`
	Comments  *string    `json:"comments,omitempty"`
}

func (u *ProductUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if u.Category != nil && *u.Category == "" {
		return &ValidationError{Field: "category", Message: "category cannot be empty"}
	}
	return nil
}

// IsEmpty reports whether the payload carries no fields at all.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Amount == nil && u.Category == nil &&
		u.DateAdded == nil && u.Comments == nil
}

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
