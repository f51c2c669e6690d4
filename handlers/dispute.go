package handlers

import (
	"net/http"

	"agrirent/models"
	"agrirent/services/dispute"
	"agrirent/utils"

	"github.com/gin-gonic/gin"
)

// DisputeHandler exposes the dispute and refund flow over HTTP.
type DisputeHandler struct {
	Service dispute.DisputeService
}

// NewDisputeHandler creates a DisputeHandler.
func NewDisputeHandler(svc dispute.DisputeService) *DisputeHandler {
	return &DisputeHandler{Service: svc}
}

// RaiseDispute handles POST /api/disputes.
func (h *DisputeHandler) RaiseDispute(c *gin.Context) {
	var input struct {
		BookingID      string   `json:"bookingId"`
		DisputeType    string   `json:"disputeType"`
		Reason         string   `json:"reason"`
		Description    string   `json:"description"`
		EvidenceImages []string `json:"evidenceImages"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Missing required dispute details"))
		return
	}

	d, err := h.Service.Raise(c.GetString("userID"), dispute.RaiseDisputeInput{
		BookingID:      input.BookingID,
		DisputeType:    input.DisputeType,
		Reason:         input.Reason,
		Description:    input.Description,
		EvidenceImages: input.EvidenceImages,
	})
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Dispute raised successfully", gin.H{"dispute": d})
}

// GetMyDisputes handles GET /api/disputes/my.
func (h *DisputeHandler) GetMyDisputes(c *gin.Context) {
	disputes, err := h.Service.ListMine(c.GetString("userID"), models.DisputeStatus(c.Query("status")))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "My disputes fetched successfully", gin.H{
		"count":    len(disputes),
		"disputes": disputes,
	})
}

// GetDisputeByID handles GET /api/disputes/:id.
func (h *DisputeHandler) GetDisputeByID(c *gin.Context) {
	d, err := h.Service.GetByID(c.GetString("userID"), c.GetBool("isAdmin"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Dispute details fetched successfully", gin.H{"dispute": d})
}

// GetAllDisputes handles GET /api/disputes/admin/all.
func (h *DisputeHandler) GetAllDisputes(c *gin.Context) {
	disputes, summary, err := h.Service.ListAll(models.DisputeStatus(c.Query("status")))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "All disputes fetched successfully", gin.H{
		"summary":  summary,
		"disputes": disputes,
	})
}

// MarkUnderReview handles PATCH /api/disputes/:id/under-review (admin).
func (h *DisputeHandler) MarkUnderReview(c *gin.Context) {
	d, err := h.Service.MarkUnderReview(c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Dispute marked as under review", gin.H{"dispute": d})
}

// AdminResolveDispute handles PATCH /api/disputes/:id/admin-action.
func (h *DisputeHandler) AdminResolveDispute(c *gin.Context) {
	var input struct {
		Action       string  `json:"action"`
		Remarks      string  `json:"remarks"`
		RefundAmount float64 `json:"refundAmount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Action and remarks are required"))
		return
	}

	d, err := h.Service.AdminResolve(c.GetString("userID"), c.Param("id"), dispute.ResolveInput{
		Action:       models.ResolutionAction(input.Action),
		Remarks:      input.Remarks,
		RefundAmount: input.RefundAmount,
	})
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Dispute updated successfully", gin.H{"dispute": d})
}

// CreateRefundOrder handles POST /api/disputes/:id/refund-order.
func (h *DisputeHandler) CreateRefundOrder(c *gin.Context) {
	order, err := h.Service.CreateRefundOrder(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Refund order created", gin.H{
		"orderId":   order.OrderID,
		"amount":    order.Amount,
		"currency":  order.Currency,
		"keyId":     order.KeyID,
		"disputeId": order.DisputeID,
	})
}

// VerifyRefund handles POST /api/disputes/:id/verify-refund.
func (h *DisputeHandler) VerifyRefund(c *gin.Context) {
	var input struct {
		RazorpayOrderID   string `json:"razorpayOrderId"`
		RazorpayPaymentID string `json:"razorpayPaymentId"`
		RazorpaySignature string `json:"razorpaySignature"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONFromError(c, utils.ValidationError("Missing payment verification details"))
		return
	}

	d, err := h.Service.VerifyRefund(c.GetString("userID"), c.Param("id"),
		input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature)
	if err != nil {
		utils.JSONFromError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Refund payment verified. Dispute resolved.", gin.H{"dispute": d})
}
