package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	paymentmodel "github.com/abtree/payment-backend/internal/core/datamodel/payment"
	paymentpkg "github.com/abtree/payment-backend/internal/payment"
)

const collectionName = "payments"

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) paymentpkg.Repository {
	return &PaymentRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *paymentmodel.Payment) (string, error) {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("inserting payment record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(result.InsertedID), nil
}

func (r *PaymentRepository) FindByUserID(ctx context.Context, userID string) ([]*paymentmodel.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying payment records: %w", err)
	}
	defer cursor.Close(ctx)

	payments := make([]*paymentmodel.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decoding payment records: %w", err)
	}
	return payments, nil
}

// ErrNotConnected is returned by the disconnected repository when the startup
// connection attempt failed and the service runs with persistence disabled.
var ErrNotConnected = errors.New("database not connected")

type disconnectedRepository struct{}

// NewDisconnectedRepository returns a Repository whose operations always fail
// with ErrNotConnected.
func NewDisconnectedRepository() paymentpkg.Repository {
	return disconnectedRepository{}
}

func (disconnectedRepository) Insert(context.Context, *paymentmodel.Payment) (string, error) {
	return "", ErrNotConnected
}

func (disconnectedRepository) FindByUserID(context.Context, string) ([]*paymentmodel.Payment, error) {
	return nil, ErrNotConnected
}
