package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"agrirent/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIfSlotFree re-runs the overlap check and inserts the booking inside
// a single multi-document transaction, closing the race window between two
// concurrent creates for intersecting intervals.
func (r *MongoBookingRepo) CreateIfSlotFree(booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		filter := overlapFilter(booking.EquipmentID, booking.BlockedStartTime, booking.BlockedEndTime, "")
		count, err := r.coll.CountDocuments(sc, filter, options.Count().SetLimit(1))
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return nil, ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return err
	}
	return nil
}
