package tracking

import (
	"time"
)

// TrackingEvent is one row of a parcel's audit trail. Rows are append-only and
// reference the parcel by tracking id only, so the history survives parcel
// deletion. The sequence ordered by CreatedAt is the authoritative timeline;
// in particular the delivery moment is the parcel_delivered event here, not
// the parcel's mutable status timestamp.
type TrackingEvent struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string    `gorm:"size:50;not null;index" json:"tracking_id"`
	Status     string    `gorm:"size:50;not null" json:"status"`
	Details    string    `gorm:"size:255" json:"details"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
