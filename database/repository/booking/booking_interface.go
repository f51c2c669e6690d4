package bookingRepo

import (
	"time"

	"agrirent/models"
)

// BookingRepository defines the data-access contract for bookings.
type BookingRepository interface {
	// CreateIfSlotFree atomically re-checks the blocked interval and inserts
	// the booking, returning ErrSlotTaken when a conflicting booking exists.
	CreateIfSlotFree(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	Update(booking *models.Booking) error

	// HasOverlap reports whether any slot-blocking booking for the equipment
	// intersects [start, end) under the half-open rule. excludeBookingID may
	// name a booking to ignore, for reschedule checks.
	HasOverlap(equipmentID string, start, end time.Time, excludeBookingID string) (bool, error)

	ListByFarmer(farmerID string, status models.BookingStatus) ([]models.Booking, error)
	ListByOwner(ownerID string, status models.BookingStatus) ([]models.Booking, error)

	// BlockedSlotsBetween returns the blocked intervals of slot-blocking
	// bookings that intersect [from, to). Uses the same exclusion set as
	// HasOverlap so the two views cannot drift apart.
	BlockedSlotsBetween(equipmentID string, from, to time.Time) ([]models.BlockedSlot, error)

	StatsForFarmer(farmerID string) (*models.BookingStats, error)
	StatsForOwner(ownerID string) (*models.BookingStats, error)
}
