package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopping-list/internal/models"
)

// MemoryStore keeps products in a mutex-guarded map. It mirrors MongoStore
// semantics (store-assigned ids, merge updates, hard deletes) so handlers can
// be exercised without a running database.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[string]models.Product)}
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	return products, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Insert(_ context.Context, product *models.Product) error {
	// Random ObjectIDs, so deleted identifiers are never handed out again.
	product.ID = primitive.NewObjectID()
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID.Hex()] = *product
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Amount != nil {
		p.Amount = *update.Amount
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.DateAdded != nil {
		p.DateAdded = *update.DateAdded
	}
	if update.Comments != nil {
		p.Comments = *update.Comments
	}

	s.products[id] = p
	return &p, nil
}

func (s *MemoryStore) ToggleMarked(_ context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Marked = !p.Marked
	s.products[id] = p
	return &p, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) AttachImage(_ context.Context, id string, data []byte, contentType string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Image = append([]byte(nil), data...)
	p.ImageType = contentType
	p.ImageURL = ImageURL(id)
	s.products[id] = p
	return &p, nil
}
