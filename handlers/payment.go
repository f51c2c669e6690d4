package handlers

import (
	"io"
	"net/http"

	"agrirent/models"
	"agrirent/services/payment"
	"agrirent/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes the payment reconciliation flow over HTTP.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreateOrder handles POST /api/payments/create-order.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Booking ID is required"))
		return
	}

	order, err := h.Service.CreateOrder(c.GetString("userID"), input.BookingID)
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Payment order created successfully", gin.H{
		"orderId":   order.OrderID,
		"amount":    order.Amount,
		"currency":  order.Currency,
		"keyId":     order.KeyID,
		"bookingId": order.BookingID,
		"paymentId": order.PaymentID,
	})
}

// VerifyPayment handles POST /api/payments/verify.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var input struct {
		RazorpayOrderID   string `json:"razorpayOrderId"`
		RazorpayPaymentID string `json:"razorpayPaymentId"`
		RazorpaySignature string `json:"razorpaySignature"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Missing payment verification details"))
		return
	}

	p, err := h.Service.Verify(c.GetString("userID"),
		input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature)
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payment verified successfully", gin.H{"payment": p})
}

// HandleWebhook handles POST /api/payments/webhook. Unauthenticated but
// signature-gated; the raw body is what the gateway signed.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONFromError(c, utils.ValidationError("Malformed webhook payload"))
		return
	}

	if err := h.Service.HandleWebhook(body, c.GetHeader("X-Razorpay-Signature")); err != nil {
		utils.JSONFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPaymentByBooking handles GET /api/payments/booking/:id.
func (h *PaymentHandler) GetPaymentByBooking(c *gin.Context) {
	p, err := h.Service.GetByBooking(c.GetString("userID"), c.GetBool("isAdmin"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payment details fetched successfully", gin.H{"payment": p})
}

// GetAllPayments handles GET /api/payments (admin).
func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.Service.List(models.PaymentStatus(c.Query("status")))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payments fetched successfully", gin.H{
		"count":    len(payments),
		"payments": payments,
	})
}
