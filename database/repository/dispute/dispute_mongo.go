package disputeRepo

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

// MongoDisputeRepo implements DisputeRepository using MongoDB.
type MongoDisputeRepo struct {
	coll *mongo.Collection
}

// NewMongoDisputeRepo creates a new instance of DisputeRepository using MongoDB.
func NewMongoDisputeRepo() DisputeRepository {
	repo := &MongoDisputeRepo{coll: database.Collection("disputes")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create dispute indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces dispute uniqueness per booking and indexes the
// party fields used by the "my disputes" listing.
func (r *MongoDisputeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "raisedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "raisedAgainst", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new dispute document.
func (r *MongoDisputeRepo) Create(dispute *models.Dispute) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	dispute.CreatedAt = now
	dispute.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, dispute); err != nil {
		return fmt.Errorf("failed to create dispute: %w", err)
	}
	return nil
}

// Update modifies an existing dispute document.
func (r *MongoDisputeRepo) Update(dispute *models.Dispute) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	dispute.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": dispute.ID}, bson.M{"$set": dispute})
	if err != nil {
		return fmt.Errorf("failed to update dispute with id %s: %w", dispute.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("dispute with id %s not found", dispute.ID)
	}
	return nil
}

// GetByID retrieves a dispute by its unique ID, or nil.
func (r *MongoDisputeRepo) GetByID(id string) (*models.Dispute, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByBookingID retrieves the dispute for a booking, or nil.
func (r *MongoDisputeRepo) GetByBookingID(bookingID string) (*models.Dispute, error) {
	return r.findOne(bson.M{"bookingId": bookingID})
}

func (r *MongoDisputeRepo) findOne(filter bson.M) (*models.Dispute, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dispute models.Dispute
	if err := r.coll.FindOne(ctx, filter).Decode(&dispute); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dispute: %w", err)
	}
	return &dispute, nil
}

// ListByParty returns disputes raised by or against the user, newest first.
func (r *MongoDisputeRepo) ListByParty(userID string, status models.DisputeStatus) ([]models.Dispute, error) {
	filter := bson.M{"$or": []bson.M{
		{"raisedBy": userID},
		{"raisedAgainst": userID},
	}}
	return r.list(filter, status)
}

// ListAll returns every dispute, newest first, optionally filtered by status.
func (r *MongoDisputeRepo) ListAll(status models.DisputeStatus) ([]models.Dispute, error) {
	return r.list(bson.M{}, status)
}

func (r *MongoDisputeRepo) list(filter bson.M, status models.DisputeStatus) ([]models.Dispute, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list disputes: %w", err)
	}
	defer cursor.Close(ctx)

	var disputes []models.Dispute
	if err := cursor.All(ctx, &disputes); err != nil {
		return nil, fmt.Errorf("failed to decode disputes: %w", err)
	}
	return disputes, nil
}
