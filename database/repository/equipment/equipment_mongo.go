package equipmentRepo

import (
	"context"
	"fmt"
	"time"

	"agrirent/database"
	"agrirent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EquipmentRepository is the read-side contract the booking core needs from
// the equipment catalog. Catalog CRUD lives in its own service.
type EquipmentRepository interface {
	GetByID(id string) (*models.Equipment, error)
}

// MongoEquipmentRepo implements EquipmentRepository using MongoDB.
type MongoEquipmentRepo struct {
	coll *mongo.Collection
}

// NewMongoEquipmentRepo creates a new instance of EquipmentRepository using MongoDB.
func NewMongoEquipmentRepo() EquipmentRepository {
	return &MongoEquipmentRepo{coll: database.Collection("equipment")}
}

// GetByID retrieves an equipment listing by its unique ID, or nil.
func (r *MongoEquipmentRepo) GetByID(id string) (*models.Equipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var equipment models.Equipment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&equipment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch equipment with id %s: %w", id, err)
	}
	return &equipment, nil
}
