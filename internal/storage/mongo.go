package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend guarda el documento como un único registro de la colección:
// {_id: <id>, document: {...}, updated_at: <fecha>}
type MongoBackend struct {
	collection *mongo.Collection
	id         string
}

func NewMongoBackend(collection *mongo.Collection, id string) *MongoBackend {
	return &MongoBackend{
		collection: collection,
		id:         id,
	}
}

type mongoRecord struct {
	ID       string `bson:"_id"`
	Document bson.D `bson:"document"`
}

func (b *MongoBackend) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record mongoRecord
	err := b.collection.FindOne(ctx, bson.M{"_id": b.id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", b.id, err)
	}

	// Extended JSON relajado: los números salen como números JSON normales
	data, err := bson.MarshalExtJSON(record.Document, false, false)
	if err != nil {
		return nil, fmt.Errorf("encode document %s: %w", b.id, err)
	}
	return data, nil
}

func (b *MongoBackend) Save(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return fmt.Errorf("decode document %s: %w", b.id, err)
	}

	replacement := bson.D{
		{Key: "_id", Value: b.id},
		{Key: "document", Value: doc},
		{Key: "updated_at", Value: time.Now()},
	}
	_, err := b.collection.ReplaceOne(
		ctx,
		bson.M{"_id": b.id},
		replacement,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace document %s: %w", b.id, err)
	}
	return nil
}
