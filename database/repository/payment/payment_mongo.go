package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"agrirent/database"
	"agrirent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{coll: database.Collection("payments")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces the one-payment-per-booking invariant at the
// storage layer and indexes the gateway order id used by verify/webhook.
func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "razorpayOrderId", Value: 1}}},
		{Keys: bson.D{{Key: "farmerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// Update modifies an existing payment document.
func (r *MongoPaymentRepo) Update(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	payment.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": payment.ID}, bson.M{"$set": payment})
	if err != nil {
		return fmt.Errorf("failed to update payment with id %s: %w", payment.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", payment.ID)
	}
	return nil
}

// GetByBookingID retrieves the payment for a booking, or nil.
func (r *MongoPaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	return r.findOne(bson.M{"bookingId": bookingID})
}

// GetByOrderID retrieves the payment for a gateway order, or nil.
func (r *MongoPaymentRepo) GetByOrderID(razorpayOrderID string) (*models.Payment, error) {
	return r.findOne(bson.M{"razorpayOrderId": razorpayOrderID})
}

func (r *MongoPaymentRepo) findOne(filter bson.M) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var payment models.Payment
	if err := r.coll.FindOne(ctx, filter).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return &payment, nil
}

// List returns all payments, newest first, optionally filtered by status.
func (r *MongoPaymentRepo) List(status models.PaymentStatus) ([]models.Payment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
