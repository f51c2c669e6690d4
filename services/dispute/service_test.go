package dispute

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"agrirent/models"
	"agrirent/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testKeySecret = "test_key_secret"
	testFarmerID  = "farmer-1"
	testOwnerID   = "owner-1"
	testBookingID = "booking-1"
	testAdminID   = "admin-1"
)

type memDisputeRepo struct {
	disputes map[string]*models.Dispute
}

func newMemDisputeRepo() *memDisputeRepo {
	return &memDisputeRepo{disputes: make(map[string]*models.Dispute)}
}

func (r *memDisputeRepo) Create(d *models.Dispute) error {
	for _, existing := range r.disputes {
		if existing.BookingID == d.BookingID {
			return errors.New("duplicate key: bookingId")
		}
	}
	cp := *d
	r.disputes[d.ID] = &cp
	return nil
}

func (r *memDisputeRepo) Update(d *models.Dispute) error {
	cp := *d
	r.disputes[d.ID] = &cp
	return nil
}

func (r *memDisputeRepo) GetByID(id string) (*models.Dispute, error) {
	d, ok := r.disputes[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDisputeRepo) GetByBookingID(bookingID string) (*models.Dispute, error) {
	for _, d := range r.disputes {
		if d.BookingID == bookingID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDisputeRepo) ListByParty(userID string, status models.DisputeStatus) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, d := range r.disputes {
		if d.RaisedBy != userID && d.RaisedAgainst != userID {
			continue
		}
		if status == "" || d.Status == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memDisputeRepo) ListAll(status models.DisputeStatus) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, d := range r.disputes {
		if status == "" || d.Status == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

type stubBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *stubBookingRepo) CreateIfSlotFree(b *models.Booking) error { return nil }

func (r *stubBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *stubBookingRepo) Update(b *models.Booking) error { return nil }

func (r *stubBookingRepo) HasOverlap(string, time.Time, time.Time, string) (bool, error) {
	return false, nil
}

func (r *stubBookingRepo) ListByFarmer(string, models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) ListByOwner(string, models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) BlockedSlotsBetween(string, time.Time, time.Time) ([]models.BlockedSlot, error) {
	return nil, nil
}

func (r *stubBookingRepo) StatsForFarmer(string) (*models.BookingStats, error) {
	return &models.BookingStats{}, nil
}

func (r *stubBookingRepo) StatsForOwner(string) (*models.BookingStats, error) {
	return &models.BookingStats{}, nil
}

type stubGateway struct {
	orders   int
	receipts []string
}

func (g *stubGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	g.orders++
	g.receipts = append(g.receipts, receipt)
	return fmt.Sprintf("order_%d", g.orders), nil
}

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestService(bookingStatus models.BookingStatus) (*DefaultDisputeService, *stubGateway) {
	gw := &stubGateway{}
	svc := &DefaultDisputeService{
		Disputes: newMemDisputeRepo(),
		Bookings: &stubBookingRepo{bookings: map[string]*models.Booking{
			testBookingID: {
				ID:       testBookingID,
				FarmerID: testFarmerID,
				OwnerID:  testOwnerID,
				Status:   bookingStatus,
			},
		}},
		Gateway:   gw,
		KeyID:     "rzp_test_key",
		KeySecret: testKeySecret,
		Logger:    zap.NewNop(),
	}
	return svc, gw
}

func serviceErr(t *testing.T, err error) *utils.ServiceError {
	t.Helper()
	var se *utils.ServiceError
	require.True(t, errors.As(err, &se), "expected a service error, got %v", err)
	return se
}

func validInput() RaiseDisputeInput {
	return RaiseDisputeInput{
		BookingID:   testBookingID,
		DisputeType: "DAMAGE",
		Reason:      "Tractor returned with a broken hitch",
		Description: "The three-point hitch was bent during the rental period.",
	}
}

func TestRaiseByFarmer(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)

	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusOpen, d.Status)
	assert.Equal(t, testFarmerID, d.RaisedBy)
	assert.Equal(t, testOwnerID, d.RaisedAgainst)
}

func TestRaiseByOwnerTargetsFarmer(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAwaitingOwnerConf)

	d, err := svc.Raise(testOwnerID, validInput())
	require.NoError(t, err)
	assert.Equal(t, testOwnerID, d.RaisedBy)
	assert.Equal(t, testFarmerID, d.RaisedAgainst)
}

func TestRaiseValidation(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)

	in := validInput()
	in.Reason = ""
	_, err := svc.Raise(testFarmerID, in)
	se := serviceErr(t, err)
	assert.Equal(t, "Missing required dispute details", se.Message)

	in = validInput()
	in.Reason = strings.Repeat("x", models.DisputeReasonMaxLen+1)
	_, err = svc.Raise(testFarmerID, in)
	se = serviceErr(t, err)
	assert.Equal(t, "Reason cannot exceed 200 characters", se.Message)

	in = validInput()
	in.Description = strings.Repeat("x", models.DisputeDescriptionMaxLen+1)
	_, err = svc.Raise(testFarmerID, in)
	se = serviceErr(t, err)
	assert.Equal(t, "Description cannot exceed 1000 characters", se.Message)

	in = validInput()
	in.EvidenceImages = make([]string, models.DisputeMaxEvidenceImages+1)
	_, err = svc.Raise(testFarmerID, in)
	se = serviceErr(t, err)
	assert.Equal(t, "Maximum 5 evidence images allowed", se.Message)
}

func TestRaiseRequiresFinishedBooking(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCancelled,
	} {
		svc, _ := newTestService(status)
		_, err := svc.Raise(testFarmerID, validInput())
		se := serviceErr(t, err)
		assert.Equal(t, "Disputes can only be raised after booking completion", se.Message)
	}
}

func TestRaiseRejectsStranger(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)

	_, err := svc.Raise("stranger", validInput())
	se := serviceErr(t, err)
	assert.Equal(t, 403, se.Status)
}

func TestRaiseOncePerBooking(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)

	_, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	_, err = svc.Raise(testOwnerID, validInput())
	se := serviceErr(t, err)
	assert.Equal(t, 409, se.Status)
	assert.Equal(t, "A dispute already exists for this booking", se.Message)
}

func TestMarkUnderReview(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	updated, err := svc.MarkUnderReview(d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusUnderReview, updated.Status)

	_, err = svc.MarkUnderReview(d.ID)
	se := serviceErr(t, err)
	assert.Equal(t, "Only open disputes can be marked under review", se.Message)
}

func TestAdminResolveNonRefundActions(t *testing.T) {
	for _, action := range []models.ResolutionAction{
		models.ActionWarning,
		models.ActionNoAction,
		models.ActionExtraCharge,
	} {
		svc, _ := newTestService(models.BookingStatusCompleted)
		d, err := svc.Raise(testFarmerID, validInput())
		require.NoError(t, err)

		updated, err := svc.AdminResolve(testAdminID, d.ID, ResolveInput{
			Action:  action,
			Remarks: "Reviewed the evidence",
		})
		require.NoError(t, err)
		assert.Equal(t, models.DisputeStatusResolved, updated.Status)
		require.NotNil(t, updated.AdminDecision)
		assert.Equal(t, testAdminID, updated.AdminDecision.ReviewedBy)
		assert.Equal(t, action, updated.AdminDecision.Action)
	}
}

func TestAdminResolveRefundEntersRefundPending(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	updated, err := svc.AdminResolve(testAdminID, d.ID, ResolveInput{
		Action:       models.ActionRefund,
		Remarks:      "Owner at fault",
		RefundAmount: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusRefundPending, updated.Status)
	assert.Equal(t, 1500.0, updated.AdminDecision.RefundAmount)
}

func TestAdminResolveValidation(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	_, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{Action: models.ActionWarning})
	se := serviceErr(t, err)
	assert.Equal(t, "Action and remarks are required", se.Message)

	_, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{Action: "BAN", Remarks: "x"})
	se = serviceErr(t, err)
	assert.Equal(t, "Invalid action type", se.Message)

	_, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{Action: models.ActionRefund, Remarks: "x"})
	se = serviceErr(t, err)
	assert.Equal(t, "Valid refund amount is required for REFUND action", se.Message)
}

func TestAdminResolveRejectsResolved(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	_, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{Action: models.ActionNoAction, Remarks: "done"})
	require.NoError(t, err)

	_, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{Action: models.ActionWarning, Remarks: "again"})
	se := serviceErr(t, err)
	assert.Equal(t, "Dispute is already resolved", se.Message)
}

func refundPendingDispute(t *testing.T, svc *DefaultDisputeService) *models.Dispute {
	t.Helper()
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)
	d, err = svc.AdminResolve(testAdminID, d.ID, ResolveInput{
		Action:       models.ActionRefund,
		Remarks:      "Owner at fault",
		RefundAmount: 1500,
	})
	require.NoError(t, err)
	return d
}

func TestCreateRefundOrder(t *testing.T) {
	svc, gw := newTestService(models.BookingStatusCompleted)
	d := refundPendingDispute(t, svc)

	order, err := svc.CreateRefundOrder(testOwnerID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.OrderID)
	assert.Equal(t, int64(150000), order.Amount)
	assert.Equal(t, d.ID, order.DisputeID)
	require.Len(t, gw.receipts, 1)
	assert.Equal(t, "dispute_refund_"+d.ID, gw.receipts[0])
}

func TestCreateRefundOrderOnlyRaisedAgainst(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d := refundPendingDispute(t, svc)

	for _, actor := range []string{testFarmerID, "stranger"} {
		_, err := svc.CreateRefundOrder(actor, d.ID)
		se := serviceErr(t, err)
		assert.Equal(t, 403, se.Status)
	}
}

func TestCreateRefundOrderOnlyWhenPending(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	_, err = svc.CreateRefundOrder(testOwnerID, d.ID)
	se := serviceErr(t, err)
	assert.Equal(t, "This dispute is not pending a refund payment", se.Message)
}

func TestVerifyRefundResolvesDispute(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d := refundPendingDispute(t, svc)

	order, err := svc.CreateRefundOrder(testOwnerID, d.ID)
	require.NoError(t, err)

	resolved, err := svc.VerifyRefund(testOwnerID, d.ID, order.OrderID, "pay_ref_1",
		sign(order.OrderID, "pay_ref_1", testKeySecret))
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, resolved.Status)

	rd := resolved.AdminDecision.RefundDetails
	require.NotNil(t, rd)
	assert.Equal(t, "pay_ref_1", rd.RefundID)
	assert.Equal(t, 1500.0, rd.Amount)
	assert.Equal(t, "PAID_BY_OWNER", rd.Status)
}

func TestVerifyRefundRejectsBadSignature(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d := refundPendingDispute(t, svc)

	order, err := svc.CreateRefundOrder(testOwnerID, d.ID)
	require.NoError(t, err)

	_, err = svc.VerifyRefund(testOwnerID, d.ID, order.OrderID, "pay_ref_1", "deadbeef")
	se := serviceErr(t, err)
	assert.Equal(t, "Invalid signature", se.Message)

	// The dispute stays pending so the owner can retry.
	current, err := svc.GetByID(testOwnerID, false, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusRefundPending, current.Status)
}

func TestListAllSummary(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)
	_, err = svc.MarkUnderReview(d.ID)
	require.NoError(t, err)

	disputes, summary, err := svc.ListAll("")
	require.NoError(t, err)
	assert.Len(t, disputes, 1)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.UnderReview)
	assert.Equal(t, 0, summary.Open)
}

func TestGetByIDAuthorization(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusCompleted)
	d, err := svc.Raise(testFarmerID, validInput())
	require.NoError(t, err)

	_, err = svc.GetByID("stranger", false, d.ID)
	se := serviceErr(t, err)
	assert.Equal(t, 403, se.Status)

	for _, actor := range []string{testFarmerID, testOwnerID} {
		got, err := svc.GetByID(actor, false, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
	}
	_, err = svc.GetByID(testAdminID, true, d.ID)
	assert.NoError(t, err)
}
