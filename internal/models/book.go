package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Category      string             `bson:"category" json:"category"`
	RentPerDay    float64            `bson:"rentPerDay" json:"rentPerDay"`
	Author        string             `bson:"author,omitempty" json:"author,omitempty"`
	PublishedYear int                `bson:"publishedYear,omitempty" json:"publishedYear,omitempty"`
	Available     bool               `bson:"available" json:"available"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	BookEntity = "book"
)
