package payment

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"zap-shift/httpServices/gateway"
	"zap-shift/httperror"
	"zap-shift/logger"
	parcelModel "zap-shift/models/parcel"
	paymentModel "zap-shift/models/payment"
	"zap-shift/services/tracking"
	paymentTypes "zap-shift/types/payment"

	"gorm.io/gorm"
)

// PaymentService bridges the gateway's hosted checkout into parcel state and
// payment records. Reconcile is triggered by a client-side redirect, not a
// webhook, so it has to tolerate duplicate and out-of-order calls; the unique
// transaction id on payments is the dedupe point.
type PaymentService struct {
	DB       *gorm.DB
	Gateway  gateway.Client
	Tracking *tracking.TrackingService
}

func NewPaymentService(db *gorm.DB, gatewayClient gateway.Client, trackingService *tracking.TrackingService) *PaymentService {
	return &PaymentService{
		DB:       db,
		Gateway:  gatewayClient,
		Tracking: trackingService,
	}
}

// CreateCheckoutSession builds a hosted checkout for one parcel. The parcel's
// tracking id travels as session metadata so reconciliation sees the same id
// the sender was shown, not a regenerated one.
func (svc *PaymentService) CreateCheckoutSession(parcelID uint) (*gateway.Session, error) {
	var p parcelModel.Parcel
	if err := svc.DB.First(&p, parcelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("Parcel not found")
		}
		return nil, err
	}

	siteURL := os.Getenv("SITE_BASE_URL")

	req := gateway.CreateSessionRequest{
		LineItem: gateway.CheckoutLineItem{
			Name:       p.Title,
			UnitAmount: int64(math.Round(p.Cost * 100)),
			Quantity:   1,
		},
		Currency:      "bdt",
		CustomerEmail: p.SenderEmail,
		SuccessURL:    siteURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     siteURL + "/payment-cancelled",
		Metadata: map[string]string{
			"parcelId":   strconv.FormatUint(uint64(p.ID), 10),
			"parcelName": p.Title,
			"trackingId": p.TrackingID,
		},
	}

	session, err := svc.Gateway.CreateCheckoutSession(req)
	if err != nil {
		return nil, httperror.NewBadGateway("Failed to create checkout session: " + err.Error())
	}

	return session, nil
}

// Reconcile confirms a checkout session and applies its effects exactly once.
func (svc *PaymentService) Reconcile(sessionID string) (*paymentTypes.ReconcileResult, error) {
	session, err := svc.Gateway.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, httperror.NewBadGateway("Failed to retrieve checkout session: " + err.Error())
	}

	// Duplicate callback or retry: the payment already exists, report success
	// without re-applying any side effects.
	var existing paymentModel.Payment
	err = svc.DB.Where("transaction_id = ?", session.TransactionID).First(&existing).Error
	if err == nil {
		return &paymentTypes.ReconcileResult{
			Success:       true,
			Message:       "Payment already recorded",
			TrackingID:    existing.TrackingID,
			TransactionID: existing.TransactionID,
			PaymentID:     existing.ID,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if session.PaymentStatus != "paid" {
		return &paymentTypes.ReconcileResult{
			Success: false,
			Message: "Payment not completed",
		}, nil
	}

	parcelID, err := strconv.ParseUint(session.Metadata["parcelId"], 10, 64)
	if err != nil {
		return nil, httperror.NewBadRequest("Invalid parcel id in session metadata")
	}
	trackingID := session.Metadata["trackingId"]

	var p parcelModel.Parcel
	if err := svc.DB.First(&p, uint(parcelID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("Parcel not found for session")
		}
		return nil, err
	}

	p.PaymentStatus = parcelModel.PaymentStatusPaid
	p.DeliveryStatus = parcelModel.DeliveryStatusPendingPickup
	p.TransactionID = &session.TransactionID
	if err := svc.DB.Save(&p).Error; err != nil {
		return nil, err
	}

	if err := svc.Tracking.Append(trackingID, "parcel_paid"); err != nil {
		logger.Error(fmt.Sprintf("Failed to append parcel_paid event for %s", trackingID), err)
	}

	record := paymentModel.Payment{
		ParcelID:      p.ID,
		ParcelName:    session.Metadata["parcelName"],
		TrackingID:    trackingID,
		TransactionID: session.TransactionID,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		PayerEmail:    session.CustomerEmail,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        time.Now(),
	}
	if err := svc.DB.Create(&record).Error; err != nil {
		return nil, err
	}

	return &paymentTypes.ReconcileResult{
		Success:       true,
		Message:       "Payment recorded successfully",
		TrackingID:    trackingID,
		TransactionID: session.TransactionID,
		PaymentID:     record.ID,
	}, nil
}

// ListByEmail returns a customer's payments, most recent first.
func (svc *PaymentService) ListByEmail(email string) ([]paymentModel.Payment, error) {
	var payments []paymentModel.Payment
	err := svc.DB.Where("payer_email = ?", email).Order("paid_at DESC").Find(&payments).Error
	return payments, err
}
