package rider

import (
	"time"
)

// Rider represents a courier application and, once approved, an active courier.
// Status is the admission state; WorkStatus is the live availability flag and
// is only flipped by the parcel service (assign / deliver / reject).
type Rider struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;not null;index" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Age   int    `gorm:"type:int" json:"age"`

	Region   string `gorm:"size:120" json:"region"`
	District string `gorm:"size:120;index" json:"district"`

	NID              string `gorm:"size:50" json:"nid"`
	BikeBrand        string `gorm:"size:120" json:"bike_brand"`
	BikeRegistration string `gorm:"size:120" json:"bike_registration"`

	Status     Status     `gorm:"size:20;not null;default:pending;index" json:"status"`
	WorkStatus WorkStatus `gorm:"size:20;not null;default:available;index" json:"work_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Status is the admission state of a rider application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// WorkStatus is a rider's current availability.
type WorkStatus string

const (
	WorkStatusAvailable  WorkStatus = "available"
	WorkStatusInDelivery WorkStatus = "in_delivery"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (ws WorkStatus) String() string {
	return string(ws)
}

func (ws WorkStatus) IsValid() bool {
	return ws == WorkStatusAvailable || ws == WorkStatusInDelivery
}
