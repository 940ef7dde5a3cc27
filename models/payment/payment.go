package payment

import (
	"time"
)

// Payment is the immutable record of a reconciled gateway session. The unique
// index on TransactionID is what makes reconciliation idempotent: a second
// callback for the same session finds the existing row and applies nothing.
type Payment struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID      uint    `gorm:"not null;index" json:"parcel_id"`
	ParcelName    string  `gorm:"size:255" json:"parcel_name"`
	TrackingID    string  `gorm:"size:50;index" json:"tracking_id"`
	TransactionID string  `gorm:"size:255;uniqueIndex;not null" json:"transaction_id"`
	Amount        float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string  `gorm:"size:10;not null" json:"currency"`
	PayerEmail    string  `gorm:"size:255;index" json:"payer_email"`
	PaymentStatus string  `gorm:"size:20;not null" json:"payment_status"`

	PaidAt    time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
