package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopping-list/internal/models"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	queryTimeout = 10 * time.Second
)

// MongoStore persists products in a single MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *MongoStore) Insert(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	// The store owns identity: whatever id came in is replaced.
	product.ID = primitive.NewObjectID()
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}

	_, err := s.collection.InsertOne(ctx, product)
	return err
}

// Update merges the provided fields into the stored record. The write is a
// field-level $set, never a document replace, so absent fields survive.
func (s *MongoStore) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.DateAdded != nil {
		set["dateAdded"] = *update.DateAdded
	}
	if update.Comments != nil {
		set["comments"] = *update.Comments
	}

	return s.findOneAndSet(ctx, objID, set)
}

// ToggleMarked flips the stored flag. The current value is read from the
// store, never taken from the client.
func (s *MongoStore) ToggleMarked(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.findOneAndSet(ctx, objID, bson.M{"marked": !current.Marked})
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachImage stores the blob inside the record, replacing any previous
// image wholesale, and sets the derived access path alongside it.
func (s *MongoStore) AttachImage(ctx context.Context, id string, data []byte, contentType string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{
		"image":     data,
		"imageType": contentType,
		"imageUrl":  ImageURL(id),
	}
	return s.findOneAndSet(ctx, objID, set)
}

func (s *MongoStore) findOneAndSet(ctx context.Context, objID primitive.ObjectID, set bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
