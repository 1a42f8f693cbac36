package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultReceiptsLimit caps Recent when no limit is given.
const DefaultReceiptsLimit = 50

// SkippedLineDocument is a cart line left out of an archived receipt.
type SkippedLineDocument struct {
	Index  int    `bson:"index"`
	Line   string `bson:"line"`
	Reason string `bson:"reason"`
}

// ReceiptDocument is an archived kitchen receipt.
type ReceiptDocument struct {
	ID          string                `bson:"_id"`
	OrderName   string                `bson:"order_name"`
	OrderType   string                `bson:"order_type,omitempty"`
	Text        string                `bson:"text"`
	Total       primitive.Decimal128  `bson:"total"`
	LineCount   int                   `bson:"line_count"`
	Skipped     []SkippedLineDocument `bson:"skipped,omitempty"`
	RequestID   string                `bson:"request_id,omitempty"`
	GeneratedAt time.Time             `bson:"generated_at"`
}

// ReceiptsRepository stores generated receipts.
type ReceiptsRepository struct {
	collection *mongo.Collection
}

// NewReceiptsRepository creates a new receipts repository.
func NewReceiptsRepository(db *MongoDB) *ReceiptsRepository {
	return &ReceiptsRepository{
		collection: db.Receipts,
	}
}

// CreateMany inserts receipts in bulk. Duplicate ids are ignored so a retried
// batch does not fail as a whole.
func (r *ReceiptsRepository) CreateMany(ctx context.Context, receipts []*ReceiptDocument) error {
	if len(receipts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(receipts))
	for i, receipt := range receipts {
		if receipt.GeneratedAt.IsZero() {
			receipt.GeneratedAt = time.Now()
		}
		docs[i] = receipt
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// Recent returns the newest receipts first, at most limit of them.
func (r *ReceiptsRepository) Recent(ctx context.Context, limit int) ([]*ReceiptDocument, error) {
	if limit <= 0 {
		limit = DefaultReceiptsLimit
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	receipts := make([]*ReceiptDocument, 0)
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
