package models

import "time"

// WorkingHours is the daily bookable window for a piece of equipment,
// in "HH:MM" local time.
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Availability is equipment-level scheduling metadata surfaced by the
// available-slots endpoint.
type Availability struct {
	SlotDurationHours int          `bson:"slotDurationHours" json:"slotDurationHours"`
	WorkingHours      WorkingHours `bson:"workingHours" json:"workingHours"`
}

// EquipmentPricing holds owner-set rates.
type EquipmentPricing struct {
	HourlyRate float64 `bson:"hourlyRate" json:"hourlyRate"`
	DailyRate  float64 `bson:"dailyRate,omitempty" json:"dailyRate,omitempty"`
}

// Equipment is a listing owned by a verified owner. The catalog itself is
// maintained elsewhere; the booking core only reads these records.
type Equipment struct {
	ID           string           `bson:"id" json:"id"`
	OwnerID      string           `bson:"ownerId" json:"ownerId"`
	Name         string           `bson:"name" json:"name"`
	Type         string           `bson:"type" json:"type"`
	Pricing      EquipmentPricing `bson:"pricing" json:"pricing"`
	Availability Availability     `bson:"availability" json:"availability"`
	IsActive     bool             `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
