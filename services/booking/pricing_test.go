package booking

import (
	"testing"
	"time"

	"agrirent/models"

	"github.com/stretchr/testify/assert"
)

func TestComputePricingRental(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p := ComputePricing(models.BookingTypeRental, start, end, 500)

	assert.Equal(t, 2000.0, p.BaseAmount)
	assert.Equal(t, 0.0, p.TravelCost)
	assert.Equal(t, 2000.0, p.TotalAmount)
}

func TestComputePricingServiceAddsSurcharge(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p := ComputePricing(models.BookingTypeService, start, end, 500)

	assert.Equal(t, 2000.0, p.BaseAmount)
	assert.Equal(t, ServiceTravelSurcharge, p.TravelCost)
	assert.Equal(t, 2200.0, p.TotalAmount)
}

func TestComputePricingFractionalHours(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	p := ComputePricing(models.BookingTypeRental, start, end, 400)

	assert.Equal(t, 600.0, p.BaseAmount)
	assert.Equal(t, 600.0, p.TotalAmount)
}

func TestBlockedIntervalRentalUnchanged(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bs, be := BlockedInterval(models.BookingTypeRental, start, end)

	assert.True(t, bs.Equal(start))
	assert.True(t, be.Equal(end))
}

func TestBlockedIntervalServiceExtendsEnd(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bs, be := BlockedInterval(models.BookingTypeService, start, end)

	assert.True(t, bs.Equal(start))
	assert.True(t, be.Equal(end.Add(ServiceBuffer)))
}

func TestOverlaps(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(8), at(12), at(8), at(12), true},
		{"partial overlap", at(8), at(12), at(10), at(14), true},
		{"containment", at(8), at(12), at(9), at(10), true},
		{"touching endpoints", at(8), at(10), at(10), at(12), false},
		{"disjoint", at(8), at(10), at(11), at(12), false},
		{"one minute in", at(8), at(10), at(9).Add(59 * time.Minute), at(12), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Symmetric by definition.
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}
