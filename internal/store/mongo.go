package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"faktura-ocr/internal/logger"
	"faktura-ocr/pkg/models"
)

// MongoStore implements Store backed by a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        zerolog.Logger
}

// MongoConfig holds the connection settings for a MongoStore.
type MongoConfig struct {
	ConnectionString string
	Database         string
	Collection       string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, config MongoConfig) (*MongoStore, error) {
	const op = "NewMongoStore"

	if config.ConnectionString == "" {
		return nil, WrapStoreError(op, ErrConnect, "connection string is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrConnect, err), "")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrConnect, err), "ping failed")
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
		log:        logger.WithComponent("store"),
	}, nil
}

// InsertWorkItems implements Store.
func (s *MongoStore) InsertWorkItems(ctx context.Context, records []models.WorkItemRecord) (*InsertResult, error) {
	const op = "InsertWorkItems"

	if len(records) == 0 {
		return &InsertResult{Acknowledged: true}, nil
	}

	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}

	res, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrInsert, err), "")
	}

	s.log.Debug().
		Int("records", len(records)).
		Str("invoiceNumber", records[0].InvoiceNumber).
		Msg("inserted work item records")

	return &InsertResult{
		Acknowledged:  true,
		InsertedCount: len(res.InsertedIDs),
		InsertedIDs:   res.InsertedIDs,
	}, nil
}

// CountByInvoiceNumber implements Store.
func (s *MongoStore) CountByInvoiceNumber(ctx context.Context, invoiceNumber string) (int64, error) {
	const op = "CountByInvoiceNumber"

	count, err := s.collection.CountDocuments(ctx, bson.M{"invoiceNumber": invoiceNumber})
	if err != nil {
		return 0, WrapStoreError(op, fmt.Errorf("%w: %v", ErrQuery, err), "")
	}
	return count, nil
}

// FindByInvoiceNumber implements Store.
func (s *MongoStore) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) ([]models.WorkItemRecord, error) {
	const op = "FindByInvoiceNumber"

	cursor, err := s.collection.Find(ctx, bson.M{"invoiceNumber": invoiceNumber},
		options.Find().SetSort(bson.D{{Key: "insertedDate", Value: 1}, {Key: "id", Value: 1}}))
	if err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrQuery, err), "")
	}
	defer cursor.Close(ctx)

	var records []models.WorkItemRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrQuery, err), "")
	}
	return records, nil
}

// FindByInsertedDateRange implements Store.
func (s *MongoStore) FindByInsertedDateRange(ctx context.Context, from, to time.Time) ([]models.WorkItemRecord, error) {
	const op = "FindByInsertedDateRange"

	filter := bson.M{"insertedDate": bson.M{"$gte": from, "$lt": to}}
	cursor, err := s.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "insertedDate", Value: 1}, {Key: "id", Value: 1}}))
	if err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrQuery, err), "")
	}
	defer cursor.Close(ctx)

	var records []models.WorkItemRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, WrapStoreError(op, fmt.Errorf("%w: %v", ErrQuery, err), "")
	}
	return records, nil
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
