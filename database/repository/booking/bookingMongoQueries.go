package bookingRepo

import (
	"fmt"
	"time"

	"agrirent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter builds the conflict query for [start, end) against the
// blocked intervals of slot-blocking bookings. Half-open semantics: an
// existing booking conflicts iff it starts before our end and ends after
// our start, so touching endpoints never collide.
func overlapFilter(equipmentID string, start, end time.Time, excludeBookingID string) bson.M {
	filter := bson.M{
		"equipmentId":      equipmentID,
		"status":           bson.M{"$nin": models.NonBlockingStatuses},
		"blockedStartTime": bson.M{"$lt": end},
		"blockedEndTime":   bson.M{"$gt": start},
	}
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}
	return filter
}

// HasOverlap reports whether any slot-blocking booking conflicts with the
// candidate interval.
func (r *MongoBookingRepo) HasOverlap(equipmentID string, start, end time.Time, excludeBookingID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, overlapFilter(equipmentID, start, end, excludeBookingID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to run overlap query for equipment %s: %w", equipmentID, err)
	}
	return count > 0, nil
}

// ListByFarmer returns the farmer's bookings, newest first, optionally
// filtered by status.
func (r *MongoBookingRepo) ListByFarmer(farmerID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(bson.M{"farmerId": farmerID}, status)
}

// ListByOwner returns the owner's bookings, newest first, optionally
// filtered by status.
func (r *MongoBookingRepo) ListByOwner(ownerID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(bson.M{"ownerId": ownerID}, status)
}

func (r *MongoBookingRepo) list(filter bson.M, status models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// BlockedSlotsBetween returns blocked intervals intersecting [from, to) for
// slot-blocking bookings. The exclusion set mirrors overlapFilter.
func (r *MongoBookingRepo) BlockedSlotsBetween(equipmentID string, from, to time.Time) ([]models.BlockedSlot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := overlapFilter(equipmentID, from, to, "")
	opts := options.Find().
		SetProjection(bson.M{"blockedStartTime": 1, "blockedEndTime": 1}).
		SetSort(bson.D{{Key: "blockedStartTime", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked slots for equipment %s: %w", equipmentID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.BlockedSlot
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		slots = append(slots, models.BlockedSlot{Start: b.BlockedStartTime, End: b.BlockedEndTime})
	}
	return slots, nil
}

// StatsForFarmer aggregates the farmer dashboard counters. TotalPaid sums
// totalAmount over bookings whose payment succeeded.
func (r *MongoBookingRepo) StatsForFarmer(farmerID string) (*models.BookingStats, error) {
	return r.stats(bson.M{"farmerId": farmerID})
}

// StatsForOwner aggregates the owner dashboard counters.
func (r *MongoBookingRepo) StatsForOwner(ownerID string) (*models.BookingStats, error) {
	return r.stats(bson.M{"ownerId": ownerID})
}

func (r *MongoBookingRepo) stats(match bson.M) (*models.BookingStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	stats := &models.BookingStats{}
	counts := []struct {
		dst    *int64
		status models.BookingStatus
	}{
		{&stats.Total, ""},
		{&stats.Pending, models.BookingStatusPending},
		{&stats.Confirmed, models.BookingStatusConfirmed},
		{&stats.Completed, models.BookingStatusCompleted},
		{&stats.Cancelled, models.BookingStatusCancelled},
	}
	for _, c := range counts {
		filter := bson.M{}
		for k, v := range match {
			filter[k] = v
		}
		if c.status != "" {
			filter["status"] = c.status
		}
		n, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count bookings: %w", err)
		}
		*c.dst = n
	}

	paidMatch := bson.M{"paymentStatus": models.PaymentStatusSuccess}
	for k, v := range match {
		paidMatch[k] = v
	}
	pipeline := []bson.M{
		{"$match": paidMatch},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$pricing.totalAmount"}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate paid totals: %w", err)
	}
	defer cursor.Close(ctx)

	var agg []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		return nil, fmt.Errorf("failed to decode paid totals: %w", err)
	}
	if len(agg) > 0 {
		stats.TotalPaid = agg[0].Total
	}
	return stats, nil
}
