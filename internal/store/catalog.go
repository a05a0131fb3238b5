package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

type Catalog struct {
	Coll *mongo.Collection
}

func NewCatalog(coll *mongo.Collection) *Catalog {
	return &Catalog{Coll: coll}
}

func (c *Catalog) FindBookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := c.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// SetAvailability flips the availability flag only if it currently holds
// expected. This test-and-set is the guard that keeps a book from being
// issued twice: of N concurrent flips from true to false, exactly one
// matches.
func (c *Catalog) SetAvailability(ctx context.Context, id primitive.ObjectID, expected, value bool) error {
	res, err := c.Coll.UpdateOne(ctx,
		bson.M{"_id": id, "available": expected},
		bson.M{"$set": bson.M{"available": value}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (c *Catalog) Find(ctx context.Context, filter bson.M) ([]models.Book, error) {
	cursor, err := c.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Catalog) Insert(ctx context.Context, book *models.Book) error {
	res, err := c.Coll.InsertOne(ctx, book)
	if err != nil {
		return err
	}
	book.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (c *Catalog) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := c.Coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.Coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
