package parcel

import (
	"time"
)

// Parcel is the main delivery record. TrackingID is assigned once at creation
// and never changes afterwards.
type Parcel struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string  `gorm:"size:50;uniqueIndex;not null" json:"tracking_id"`
	Title      string  `gorm:"size:255;not null" json:"title"`
	Type       string  `gorm:"size:50" json:"type"`
	WeightKG   float64 `gorm:"type:decimal(10,2)" json:"weight_kg"`
	Cost       float64 `gorm:"type:decimal(10,2);not null" json:"cost"`

	SenderName    string `gorm:"size:255;not null" json:"sender_name"`
	SenderEmail   string `gorm:"size:255;not null;index" json:"sender_email"`
	SenderPhone   string `gorm:"size:20" json:"sender_phone"`
	SenderAddress string `gorm:"type:text" json:"sender_address"`

	ReceiverName     string `gorm:"size:255;not null" json:"receiver_name"`
	ReceiverEmail    string `gorm:"size:255" json:"receiver_email"`
	ReceiverPhone    string `gorm:"size:20" json:"receiver_phone"`
	ReceiverAddress  string `gorm:"type:text" json:"receiver_address"`
	ReceiverDistrict string `gorm:"size:120;index" json:"receiver_district"`

	PaymentStatus  PaymentStatus  `gorm:"size:20;not null;default:unpaid" json:"payment_status"`
	DeliveryStatus DeliveryStatus `gorm:"size:50;not null;index" json:"delivery_status"`
	TransactionID  *string        `gorm:"size:255" json:"transaction_id,omitempty"`

	RiderID    *uint   `gorm:"index" json:"rider_id,omitempty"`
	RiderName  *string `gorm:"size:255" json:"rider_name,omitempty"`
	RiderEmail *string `gorm:"size:255" json:"rider_email,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryStatusCreated            DeliveryStatus = "created"
	DeliveryStatusPendingPickup      DeliveryStatus = "pending_pickup"
	DeliveryStatusDriverAssigned     DeliveryStatus = "driver_assigned"
	DeliveryStatusRiderArriving      DeliveryStatus = "rider_arriving"
	DeliveryStatusInTransit          DeliveryStatus = "in_transit"
	DeliveryStatusReachedDestination DeliveryStatus = "reached_destination"
	DeliveryStatusDelivered          DeliveryStatus = "parcel_delivered"
	DeliveryStatusRejected           DeliveryStatus = "rejected"
)
