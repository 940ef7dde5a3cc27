package payment

import (
	"zap-shift/types"
)

// CheckoutSessionRequest asks the gateway for a hosted checkout session for
// one parcel.
type CheckoutSessionRequest struct {
	ParcelID uint `json:"parcel_id" validate:"required"`
}

func (r CheckoutSessionRequest) Validate() error {
	return types.Validate(r)
}

// ReconcileResult is what the verify-payment endpoint returns. A session that
// is not paid yet produces Success=false without an error status.
type ReconcileResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TrackingID    string `json:"tracking_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentID     uint   `json:"payment_id,omitempty"`
}
