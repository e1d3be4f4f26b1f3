// Package mongo implements the recipe store on MongoDB.
package mongo

import (
	"context"
	"errors"

	"recipedex/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Backend holds the client and the recipe collection handle. The handle is
// shared read-only across concurrent query resolutions; the driver's client
// is safe for concurrent use.
type Backend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewBackend connects to MongoDB and verifies the connection with a ping.
func NewBackend(ctx context.Context, uri string, dbName string, collName string) (*Backend, error) {
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &Backend{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

func (b *Backend) FindAll(ctx context.Context) ([]map[string]interface{}, error) {
	cursor, err := b.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (b *Backend) FindByTitle(ctx context.Context, title string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	err := b.collection.FindOne(ctx, bson.M{"title": title}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return doc, nil
}

func (b *Backend) InsertMany(ctx context.Context, docs []map[string]interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		batch = append(batch, doc)
	}
	_, err := b.collection.InsertMany(ctx, batch)
	return err
}

func (b *Backend) DeleteAll(ctx context.Context) error {
	_, err := b.collection.DeleteMany(ctx, bson.M{})
	return err
}

func (b *Backend) Count(ctx context.Context) (int64, error) {
	return b.collection.CountDocuments(ctx, bson.M{})
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, nil)
}

func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
