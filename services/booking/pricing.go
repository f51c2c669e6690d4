package booking

import (
	"time"

	"agrirent/models"
)

const (
	// ServiceTravelSurcharge is the flat fee, in currency units, added to
	// SERVICE bookings for the operator's travel.
	ServiceTravelSurcharge = 200.0

	// ServiceBuffer extends the blocked end time of SERVICE bookings to
	// reserve travel/setup time. The buffer blocks the slot but is never
	// billed.
	ServiceBuffer = 60 * time.Minute
)

// ComputePricing derives the booking price from the requested interval and
// the equipment's hourly rate. Duration may be fractional; no rounding is
// applied here.
func ComputePricing(bookingType models.BookingType, start, end time.Time, hourlyRate float64) models.Pricing {
	durationHours := end.Sub(start).Hours()
	baseAmount := durationHours * hourlyRate

	travelCost := 0.0
	if bookingType == models.BookingTypeService {
		travelCost = ServiceTravelSurcharge
	}

	return models.Pricing{
		BaseAmount:  baseAmount,
		TravelCost:  travelCost,
		TotalAmount: baseAmount + travelCost,
	}
}

// BlockedInterval maps the requested interval to the system-reserved one.
// RENTAL bookings block exactly what was requested; SERVICE bookings extend
// the end by ServiceBuffer.
func BlockedInterval(bookingType models.BookingType, start, end time.Time) (time.Time, time.Time) {
	if bookingType == models.BookingTypeService {
		return start, end.Add(ServiceBuffer)
	}
	return start, end
}
