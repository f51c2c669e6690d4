package models

import "time"

// BookingType distinguishes equipment-only rentals from operator services.
type BookingType string

const (
	BookingTypeRental  BookingType = "RENTAL"
	BookingTypeService BookingType = "SERVICE"
)

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	BookingStatusPending           BookingStatus = "PENDING"
	BookingStatusAwaitingPayment   BookingStatus = "AWAITING_PAYMENT"
	BookingStatusConfirmed         BookingStatus = "CONFIRMED"
	BookingStatusInProgress        BookingStatus = "IN_PROGRESS"
	BookingStatusAwaitingOwnerConf BookingStatus = "AWAITING_OWNER_CONFIRMATION"
	BookingStatusCompleted         BookingStatus = "COMPLETED"
	BookingStatusCancelled         BookingStatus = "CANCELLED"
)

// NonBlockingStatuses are the states that release the equipment slot.
// Every other status keeps the blocked interval reserved.
var NonBlockingStatuses = []BookingStatus{BookingStatusCancelled, BookingStatusCompleted}

// Pricing is the money breakdown embedded in a booking.
// TotalAmount must always equal BaseAmount + TravelCost.
type Pricing struct {
	BaseAmount  float64 `bson:"baseAmount" json:"baseAmount"`
	TravelCost  float64 `bson:"travelCost" json:"travelCost"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// Booking is one reservation of a piece of equipment by a farmer.
// The Requested* times are what the farmer sees; the Blocked* times are
// what conflict detection uses (SERVICE bookings extend the blocked end
// by a travel/setup buffer).
type Booking struct {
	ID          string      `bson:"id" json:"id"`
	FarmerID    string      `bson:"farmerId" json:"farmerId"`
	OwnerID     string      `bson:"ownerId" json:"ownerId"`
	EquipmentID string      `bson:"equipmentId" json:"equipmentId"`
	BookingType BookingType `bson:"bookingType" json:"bookingType"`

	RequestedStartTime time.Time `bson:"requestedStartTime" json:"requestedStartTime"`
	RequestedEndTime   time.Time `bson:"requestedEndTime" json:"requestedEndTime"`
	BlockedStartTime   time.Time `bson:"blockedStartTime" json:"blockedStartTime"`
	BlockedEndTime     time.Time `bson:"blockedEndTime" json:"blockedEndTime"`

	Pricing Pricing `bson:"pricing" json:"pricing"`

	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`

	// Lifecycle timestamps, each set once on the first transition into the
	// corresponding state. OwnerApprovedAt marks the owner's approval
	// (PENDING -> AWAITING_PAYMENT); PaymentConfirmedAt marks successful
	// payment (AWAITING_PAYMENT -> CONFIRMED). They record different events
	// and are deliberately two fields.
	OwnerApprovedAt    *time.Time `bson:"ownerApprovedAt,omitempty" json:"ownerApprovedAt,omitempty"`
	PaymentConfirmedAt *time.Time `bson:"paymentConfirmedAt,omitempty" json:"paymentConfirmedAt,omitempty"`
	StartedAt          *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt        *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	OwnerConfirmedAt   *time.Time `bson:"ownerConfirmedAt,omitempty" json:"ownerConfirmedAt,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsBlocking reports whether the booking still reserves its slot.
func (b *Booking) IsBlocking() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusCompleted
}

// PartyRole identifies which side of a booking an actor is on.
type PartyRole int

const (
	PartyNone PartyRole = iota
	PartyFarmer
	PartyOwner
)

// BookingRole is the authorization predicate for booking mutations: it maps
// an actor id to the role that actor holds on the booking.
func BookingRole(actorID string, b *Booking) PartyRole {
	switch actorID {
	case b.FarmerID:
		return PartyFarmer
	case b.OwnerID:
		return PartyOwner
	default:
		return PartyNone
	}
}

// BlockedSlot is one reserved interval, as returned by the available-slots
// projection.
type BlockedSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingStats is the per-party dashboard aggregate.
type BookingStats struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	TotalPaid float64 `json:"totalPaid"`
}
