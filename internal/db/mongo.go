package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client is an explicit store handle: acquired once at service start and
// released at shutdown. Collections are handed to the components that need
// them instead of being reached through a package global.
type Client struct {
	mongo  *mongo.Client
	dbName string
}

func Connect(uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB")
	return &Client{mongo: client, dbName: dbName}, nil
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.mongo.Database(c.dbName).Collection(name)
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.mongo.Disconnect(ctx)
}
