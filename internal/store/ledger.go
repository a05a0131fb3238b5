package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

type Ledger struct {
	Coll *mongo.Collection
}

func NewLedger(coll *mongo.Collection) *Ledger {
	return &Ledger{Coll: coll}
}

func (l *Ledger) Create(ctx context.Context, txn *models.Transaction) error {
	res, err := l.Coll.InsertOne(ctx, txn)
	if err != nil {
		return err
	}
	txn.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (l *Ledger) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := l.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// CloseIfIssued finalizes a transaction, guarded on status still being
// "issued". A second close attempt matches nothing and reports
// ErrConditionFailed, so rent is written exactly once.
func (l *Ledger) CloseIfIssued(ctx context.Context, id primitive.ObjectID, returnDate time.Time, rent float64) error {
	res, err := l.Coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusIssued},
		bson.M{"$set": bson.M{
			"status":     models.StatusReturned,
			"returnDate": returnDate,
			"rent":       rent,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (l *Ledger) Find(ctx context.Context, filter bson.M) ([]models.Transaction, error) {
	cursor, err := l.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err = cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CountOpenForBook reports whether an open loan references the book. Used by
// the catalog routes to refuse deleting a book that is on loan.
func (l *Ledger) CountOpenForBook(ctx context.Context, bookID primitive.ObjectID) (int64, error) {
	return l.Coll.CountDocuments(ctx, bson.M{
		"book":   bookID,
		"status": models.StatusIssued,
	})
}
