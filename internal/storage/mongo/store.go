// Package mongo stores blobs as documents of a single MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/storage"
)

// CollectionName holds one document per storage key
const CollectionName = "blobs"

type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Connect opens a client and verifies the server answers within 10 seconds
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

type blobStore struct {
	client *mongo.Client
	blobs  *mongo.Collection
	logger *zap.Logger
}

// NewStore creates a blob store in database. Close disconnects client.
func NewStore(client *mongo.Client, database string, logger *zap.Logger) *blobStore {
	return &blobStore{
		client: client,
		blobs:  client.Database(database).Collection(CollectionName),
		logger: logger,
	}
}

func (s *blobStore) Load(ctx context.Context, key string) (*storage.Blob, error) {
	var doc blobDocument
	err := s.blobs.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &storage.Blob{Key: key}, nil
	}
	if err != nil {
		s.logger.Error("Failed to load blob", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &storage.Blob{Key: key, Data: doc.Value, Version: strconv.FormatInt(doc.Version, 10)}, nil
}

func (s *blobStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	now := time.Now()

	if ifMatch == "" {
		_, err := s.blobs.InsertOne(ctx, blobDocument{Key: key, Value: data, Version: 1, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrVersionConflict
		}
		if err != nil {
			s.logger.Error("Failed to insert blob", zap.String("key", key), zap.Error(err))
			return "", fmt.Errorf("failed to save %s: %w", key, err)
		}
		return "1", nil
	}

	filter := bson.M{"_id": key}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if ifMatch == storage.AnyVersion {
		opts.SetUpsert(true)
	} else {
		expected, err := strconv.ParseInt(ifMatch, 10, 64)
		if err != nil {
			return "", storage.ErrVersionConflict
		}
		filter["version"] = expected
	}

	update := bson.M{
		"$set": bson.M{"value": data, "updated_at": now},
		"$inc": bson.M{"version": int64(1)},
	}

	var doc blobDocument
	err := s.blobs.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", storage.ErrVersionConflict
	}
	if err != nil {
		s.logger.Error("Failed to save blob", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to save %s: %w", key, err)
	}
	return strconv.FormatInt(doc.Version, 10), nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.blobs.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		s.logger.Error("Failed to delete blob", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *blobStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
