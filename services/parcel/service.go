package parcel

import (
	"errors"
	"fmt"
	"time"

	"zap-shift/httperror"
	"zap-shift/logger"
	parcelModel "zap-shift/models/parcel"
	riderModel "zap-shift/models/rider"
	"zap-shift/services/tracking"
	"zap-shift/services/trackingid"
	parcelTypes "zap-shift/types/parcel"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ParcelService owns the parcel delivery lifecycle: creation, rider
// assignment, status progression, rejection and removal. Parcel and rider
// writes in the coupled operations are two sequential saves, not one
// transaction; a crash between them can leave the pair briefly inconsistent,
// which is accepted. Tracking appends never fail the triggering operation.
type ParcelService struct {
	DB       *gorm.DB
	Tracking *tracking.TrackingService

	newTrackingID func() string
}

func NewParcelService(db *gorm.DB, trackingService *tracking.TrackingService) *ParcelService {
	return &ParcelService{
		DB:            db,
		Tracking:      trackingService,
		newTrackingID: trackingid.New,
	}
}

// appendEvent logs a tracking event without propagating failures.
func (ps *ParcelService) appendEvent(trackingID string, status parcelModel.DeliveryStatus) {
	if err := ps.Tracking.Append(trackingID, string(status)); err != nil {
		logger.Error(fmt.Sprintf("Failed to append tracking event %s for %s", status, trackingID), err)
	}
}

// Create stores a new parcel with a fresh tracking id, unpaid, status created.
func (ps *ParcelService) Create(req parcelTypes.ParcelCreateRequest) (*parcelModel.Parcel, error) {
	p := parcelModel.Parcel{
		TrackingID:       ps.newTrackingID(),
		Title:            req.Title,
		Type:             req.Type,
		WeightKG:         req.WeightKG,
		Cost:             req.Cost,
		SenderName:       req.SenderName,
		SenderEmail:      req.SenderEmail,
		SenderPhone:      req.SenderPhone,
		SenderAddress:    req.SenderAddress,
		ReceiverName:     req.ReceiverName,
		ReceiverEmail:    req.ReceiverEmail,
		ReceiverPhone:    req.ReceiverPhone,
		ReceiverAddress:  req.ReceiverAddress,
		ReceiverDistrict: req.ReceiverDistrict,
		PaymentStatus:    parcelModel.PaymentStatusUnpaid,
		DeliveryStatus:   parcelModel.DeliveryStatusCreated,
	}

	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&p).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Same-day random-suffix collision on the tracking id unique index.
		p.ID = 0
		p.TrackingID = ps.newTrackingID()
		err = ps.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&p).Error
		})
	}
	if err != nil {
		return nil, err
	}

	ps.appendEvent(p.TrackingID, parcelModel.DeliveryStatusCreated)

	return &p, nil
}

// GetByID fetches a single parcel.
func (ps *ParcelService) GetByID(id uint) (*parcelModel.Parcel, error) {
	var p parcelModel.Parcel
	if err := ps.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("Parcel not found")
		}
		return nil, err
	}
	return &p, nil
}

// List returns parcels filtered by sender email and/or exact delivery status,
// newest-created first.
func (ps *ParcelService) List(email string, status string) ([]parcelModel.Parcel, error) {
	query := ps.DB.Model(&parcelModel.Parcel{})
	if email != "" {
		query = query.Where("sender_email = ?", email)
	}
	if status != "" {
		query = query.Where("delivery_status = ?", status)
	}

	var parcels []parcelModel.Parcel
	if err := query.Order("created_at DESC").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// Assign puts a rider on a paid, unassigned parcel and marks the rider busy.
func (ps *ParcelService) Assign(parcelID, riderID uint) (*parcelModel.Parcel, error) {
	p, err := ps.GetByID(parcelID)
	if err != nil {
		return nil, err
	}

	var r riderModel.Rider
	if err := ps.DB.First(&r, riderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("Rider not found")
		}
		return nil, err
	}

	if p.PaymentStatus != parcelModel.PaymentStatusPaid {
		return nil, httperror.NewConflict("Parcel must be paid before a rider can be assigned")
	}
	if p.RiderID != nil {
		return nil, httperror.NewConflict("Parcel already has an assigned rider")
	}

	p.DeliveryStatus = parcelModel.DeliveryStatusDriverAssigned
	p.RiderID = &r.ID
	p.RiderName = &r.Name
	p.RiderEmail = &r.Email

	if err := ps.DB.Save(p).Error; err != nil {
		return nil, err
	}

	r.WorkStatus = riderModel.WorkStatusInDelivery
	if err := ps.DB.Save(&r).Error; err != nil {
		return nil, err
	}

	ps.appendEvent(p.TrackingID, parcelModel.DeliveryStatusDriverAssigned)

	return p, nil
}

// UpdateStatus sets a new delivery status. Any enumerated code is accepted in
// any order; only the delivered code carries a side effect (the assigned rider
// becomes available again).
func (ps *ParcelService) UpdateStatus(parcelID uint, newStatus parcelModel.DeliveryStatus, riderID uint) (*parcelModel.Parcel, error) {
	if !newStatus.IsValid() {
		return nil, httperror.NewBadRequest(fmt.Sprintf("Unknown delivery status: %s", newStatus))
	}

	p, err := ps.GetByID(parcelID)
	if err != nil {
		return nil, err
	}

	p.DeliveryStatus = newStatus
	if err := ps.DB.Save(p).Error; err != nil {
		return nil, err
	}

	if newStatus == parcelModel.DeliveryStatusDelivered {
		freeID := riderID
		if freeID == 0 && p.RiderID != nil {
			freeID = *p.RiderID
		}
		if freeID != 0 {
			if err := ps.DB.Model(&riderModel.Rider{}).Where("id = ?", freeID).
				Update("work_status", riderModel.WorkStatusAvailable).Error; err != nil {
				logger.Error(fmt.Sprintf("Failed to free rider %d after delivery", freeID), err)
			}
		}
	}

	ps.appendEvent(p.TrackingID, newStatus)

	return p, nil
}

// Reject undoes a bad assignment: frees the rider if one is set, clears the
// rider fields and moves the parcel to the given status.
func (ps *ParcelService) Reject(parcelID uint, newStatus parcelModel.DeliveryStatus) (*parcelModel.Parcel, error) {
	if !newStatus.IsValid() {
		return nil, httperror.NewBadRequest(fmt.Sprintf("Unknown delivery status: %s", newStatus))
	}

	p, err := ps.GetByID(parcelID)
	if err != nil {
		return nil, err
	}

	if p.RiderID != nil {
		if err := ps.DB.Model(&riderModel.Rider{}).Where("id = ?", *p.RiderID).
			Update("work_status", riderModel.WorkStatusAvailable).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to free rider %d on rejection", *p.RiderID), err)
		}
	}

	p.DeliveryStatus = newStatus
	p.RiderID = nil
	p.RiderName = nil
	p.RiderEmail = nil

	// Save skips nil pointer columns, so clear the rider fields explicitly.
	if err := ps.DB.Model(p).Select("delivery_status", "rider_id", "rider_name", "rider_email").
		Updates(map[string]interface{}{
			"delivery_status": newStatus,
			"rider_id":        nil,
			"rider_name":      nil,
			"rider_email":     nil,
		}).Error; err != nil {
		return nil, err
	}

	ps.appendEvent(p.TrackingID, newStatus)

	return p, nil
}

// Delete removes the parcel. Tracking events are left in place: history
// survives parcel deletion.
func (ps *ParcelService) Delete(parcelID uint) error {
	p, err := ps.GetByID(parcelID)
	if err != nil {
		return err
	}
	return ps.DB.Delete(p).Error
}

// DailyDeliveredCount is one day's worth of completed deliveries.
type DailyDeliveredCount struct {
	Day   time.Time `gorm:"column:day" json:"day"`
	Count int64     `gorm:"column:count" json:"count"`
}

// DeliveredPerDay counts delivered parcels per calendar day over the trailing
// window. The day comes from the parcel_delivered tracking event, not the
// parcel row: the event log is the authoritative delivery moment.
func (ps *ParcelService) DeliveredPerDay(days int) ([]DailyDeliveredCount, error) {
	since := now.BeginningOfDay().AddDate(0, 0, -(days - 1))

	var counts []DailyDeliveredCount
	err := ps.DB.Raw(`
		SELECT DATE(te.created_at) AS day, COUNT(DISTINCT p.id) AS count
		FROM parcels p
		JOIN tracking_events te
			ON te.tracking_id = p.tracking_id AND te.status = ?
		WHERE p.delivery_status = ? AND te.created_at >= ?
		GROUP BY DATE(te.created_at)
		ORDER BY day DESC`,
		string(parcelModel.DeliveryStatusDelivered),
		string(parcelModel.DeliveryStatusDelivered),
		since,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
