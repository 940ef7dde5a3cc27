package tracking

import (
	"strings"

	trackingModel "zap-shift/models/tracking"

	"gorm.io/gorm"
)

// TrackingService appends to and reads the per-parcel event log.
type TrackingService struct {
	DB *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{DB: db}
}

// Humanize derives the display string for a status code: underscore-split,
// title-cased, space-joined ("driver_assigned" -> "Driver Assigned").
func Humanize(status string) string {
	parts := strings.Split(status, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Append writes one event for the tracking id. Duplicate statuses are valid;
// re-entrant transitions simply add another row.
func (ts *TrackingService) Append(trackingID, status string) error {
	event := trackingModel.TrackingEvent{
		TrackingID: trackingID,
		Status:     status,
		Details:    Humanize(status),
	}
	return ts.DB.Create(&event).Error
}

// ListByTrackingID returns all events for the id in chronological order.
func (ts *TrackingService) ListByTrackingID(trackingID string) ([]trackingModel.TrackingEvent, error) {
	var events []trackingModel.TrackingEvent
	err := ts.DB.Where("tracking_id = ?", trackingID).Order("created_at ASC").Find(&events).Error
	return events, err
}
