package models

import "time"

// DisputeStatus is the dispute lifecycle state. REJECTED and CLOSED are
// valid stored values but no current flow produces them.
type DisputeStatus string

const (
	DisputeStatusOpen          DisputeStatus = "OPEN"
	DisputeStatusUnderReview   DisputeStatus = "UNDER_REVIEW"
	DisputeStatusRefundPending DisputeStatus = "REFUND_PENDING"
	DisputeStatusResolved      DisputeStatus = "RESOLVED"
	DisputeStatusRejected      DisputeStatus = "REJECTED"
	DisputeStatusClosed        DisputeStatus = "CLOSED"
)

// ResolutionAction is the admin's verdict on a dispute.
type ResolutionAction string

const (
	ActionRefund      ResolutionAction = "REFUND"
	ActionExtraCharge ResolutionAction = "EXTRA_CHARGE"
	ActionWarning     ResolutionAction = "WARNING"
	ActionNoAction    ResolutionAction = "NO_ACTION"
)

const (
	DisputeReasonMaxLen      = 200
	DisputeDescriptionMaxLen = 1000
	DisputeMaxEvidenceImages = 5
)

// RefundDetails records the owner-funded refund settlement attached to an
// admin REFUND decision once it has been paid.
type RefundDetails struct {
	RefundID string    `bson:"refundId" json:"refundId"`
	Amount   float64   `bson:"amount" json:"amount"`
	PaidAt   time.Time `bson:"paidAt" json:"paidAt"`
	Status   string    `bson:"status" json:"status"`
}

// AdminDecision is the reviewing admin's resolution of a dispute.
type AdminDecision struct {
	ReviewedBy    string           `bson:"reviewedBy" json:"reviewedBy"`
	Action        ResolutionAction `bson:"action" json:"action"`
	Remarks       string           `bson:"remarks" json:"remarks"`
	RefundAmount  float64          `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	DecidedAt     time.Time        `bson:"decidedAt" json:"decidedAt"`
	RefundDetails *RefundDetails   `bson:"refundDetails,omitempty" json:"refundDetails,omitempty"`
}

// Dispute is an at-most-one-per-booking complaint raised by either party
// after the work is done, arbitrated by an admin.
type Dispute struct {
	ID             string         `bson:"id" json:"id"`
	BookingID      string         `bson:"bookingId" json:"bookingId"`
	RaisedBy       string         `bson:"raisedBy" json:"raisedBy"`
	RaisedAgainst  string         `bson:"raisedAgainst" json:"raisedAgainst"`
	DisputeType    string         `bson:"disputeType" json:"disputeType"`
	Reason         string         `bson:"reason" json:"reason"`
	Description    string         `bson:"description" json:"description"`
	EvidenceImages []string       `bson:"evidenceImages,omitempty" json:"evidenceImages,omitempty"`
	Status         DisputeStatus  `bson:"status" json:"status"`
	AdminDecision  *AdminDecision `bson:"adminDecision,omitempty" json:"adminDecision,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisputeSummary groups dispute counts by status for the admin dashboard.
type DisputeSummary struct {
	Total       int `json:"total"`
	Open        int `json:"open"`
	UnderReview int `json:"underReview"`
	Resolved    int `json:"resolved"`
}
