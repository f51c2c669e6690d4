package handlers

import (
	"net/http"
	"time"

	"agrirent/models"
	"agrirent/services/booking"
	"agrirent/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		EquipmentID        string    `json:"equipmentId"`
		BookingType        string    `json:"bookingType"`
		RequestedStartTime time.Time `json:"requestedStartTime"`
		RequestedEndTime   time.Time `json:"requestedEndTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Invalid date format"))
		return
	}

	detail, err := h.Service.Create(c.GetString("userID"), booking.CreateBookingInput{
		EquipmentID:        input.EquipmentID,
		BookingType:        models.BookingType(input.BookingType),
		RequestedStartTime: input.RequestedStartTime,
		RequestedEndTime:   input.RequestedEndTime,
	})
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": detail})
}

// GetBookingByID handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	detail, err := h.Service.GetByID(c.GetString("userID"), c.GetBool("isAdmin"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking details fetched successfully", gin.H{"booking": detail})
}

// GetFarmerBookings handles GET /api/bookings/farmer.
func (h *BookingHandler) GetFarmerBookings(c *gin.Context) {
	bookings, err := h.Service.ListForFarmer(c.GetString("userID"), models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Farmer bookings fetched successfully", gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// GetOwnerBookings handles GET /api/bookings/owner.
func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	bookings, err := h.Service.ListForOwner(c.GetString("userID"), models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Owner bookings fetched successfully", gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// ConfirmBooking handles PATCH /api/bookings/:id/confirm (owner approval).
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	b, err := h.Service.Confirm(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking approved. Awaiting payment from farmer.", gin.H{"booking": b})
}

// StartBooking handles PATCH /api/bookings/:id/start.
func (h *BookingHandler) StartBooking(c *gin.Context) {
	b, err := h.Service.Start(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking started successfully", gin.H{"booking": b})
}

// CompleteBooking handles PATCH /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	b, err := h.Service.Complete(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking completed. Awaiting owner confirmation", gin.H{"booking": b})
}

// OwnerConfirmCompletion handles PATCH /api/bookings/:id/owner-confirm.
func (h *BookingHandler) OwnerConfirmCompletion(c *gin.Context) {
	b, err := h.Service.OwnerConfirm(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking completed successfully", gin.H{"booking": b})
}

// CancelBooking handles PATCH /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		CancellationReason string `json:"cancellationReason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Service.Cancel(c.GetString("userID"), c.Param("id"), input.CancellationReason)
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking cancelled successfully", gin.H{"booking": b})
}

// GetAvailableSlots handles GET /api/bookings/equipment/:equipmentId/available-slots.
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.JSONFromError(c, utils.ValidationError("Date is required"))
		return
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONFromError(c, utils.ValidationError("Invalid date format"))
		return
	}

	availability, err := h.Service.AvailableSlots(c.Param("equipmentId"), day)
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Available slots fetched successfully", gin.H{
		"equipment": gin.H{
			"slotDurationHours": availability.SlotDurationHours,
			"workingHours":      availability.WorkingHours,
		},
		"bookedSlots": availability.BookedSlots,
	})
}

// GetFarmerStats handles GET /api/bookings/farmer/stats.
func (h *BookingHandler) GetFarmerStats(c *gin.Context) {
	stats, err := h.Service.FarmerStats(c.GetString("userID"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Farmer statistics fetched successfully", gin.H{"stats": stats})
}

// GetOwnerStats handles GET /api/bookings/owner/stats.
func (h *BookingHandler) GetOwnerStats(c *gin.Context) {
	stats, err := h.Service.OwnerStats(c.GetString("userID"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Owner statistics fetched successfully", gin.H{"stats": stats})
}
