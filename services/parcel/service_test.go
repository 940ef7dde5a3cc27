package parcel

import (
	"regexp"
	"testing"

	parcelModel "zap-shift/models/parcel"
	riderModel "zap-shift/models/rider"
	trackingModel "zap-shift/models/tracking"
	"zap-shift/services/tracking"
	"zap-shift/services/trackingid"
	"zap-shift/testutil"
	parcelTypes "zap-shift/types/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*ParcelService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupPostgres(t)
	return NewParcelService(db, tracking.NewTrackingService(db)), db
}

func createTestParcel(t *testing.T, svc *ParcelService) *parcelModel.Parcel {
	t.Helper()
	p, err := svc.Create(parcelTypes.ParcelCreateRequest{
		Title:            "Box of books",
		Type:             "document",
		WeightKG:         2.5,
		Cost:             500,
		SenderName:       "Karim",
		SenderEmail:      "karim@example.com",
		SenderAddress:    "House 1, Road 2, Dhaka",
		ReceiverName:     "Rahim",
		ReceiverAddress:  "Station Road, Chattogram",
		ReceiverDistrict: "Chattogram",
	})
	require.NoError(t, err)
	return p
}

func createApprovedRider(t *testing.T, db *gorm.DB) *riderModel.Rider {
	t.Helper()
	r := riderModel.Rider{
		Name:       "Salam",
		Email:      "salam@example.com",
		Phone:      "01711111111",
		Age:        25,
		District:   "Chattogram",
		Status:     riderModel.StatusApproved,
		WorkStatus: riderModel.WorkStatusAvailable,
	}
	require.NoError(t, db.Create(&r).Error)
	return &r
}

func markPaid(t *testing.T, db *gorm.DB, p *parcelModel.Parcel) {
	t.Helper()
	require.NoError(t, db.Model(p).Updates(map[string]interface{}{
		"payment_status":  parcelModel.PaymentStatusPaid,
		"delivery_status": parcelModel.DeliveryStatusPendingPickup,
	}).Error)
	p.PaymentStatus = parcelModel.PaymentStatusPaid
}

func eventsFor(t *testing.T, db *gorm.DB, trackingID string) []trackingModel.TrackingEvent {
	t.Helper()
	var events []trackingModel.TrackingEvent
	require.NoError(t, db.Where("tracking_id = ?", trackingID).Order("created_at ASC").Find(&events).Error)
	return events
}

func TestCreateAssignsTrackingIDAndLogsEvent(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)

	assert.Regexp(t, regexp.MustCompile(`^TRK-\d{8}-[A-F0-9]{6}$`), p.TrackingID)
	assert.Equal(t, parcelModel.PaymentStatusUnpaid, p.PaymentStatus)
	assert.Equal(t, parcelModel.DeliveryStatusCreated, p.DeliveryStatus)
	assert.Nil(t, p.RiderID)

	events := eventsFor(t, db, p.TrackingID)
	require.Len(t, events, 1)
	assert.Equal(t, "created", events[0].Status)
	assert.Equal(t, "Created", events[0].Details)
}

func TestCreateRetriesOnTrackingIDCollision(t *testing.T) {
	svc, db := newTestService(t)

	taken := trackingid.New()
	require.NoError(t, db.Create(&parcelModel.Parcel{
		TrackingID:     taken,
		Title:          "Existing",
		Cost:           100,
		SenderName:     "Karim",
		SenderEmail:    "karim@example.com",
		ReceiverName:   "Rahim",
		DeliveryStatus: parcelModel.DeliveryStatusCreated,
	}).Error)

	fresh := trackingid.New()
	ids := []string{taken, fresh}
	svc.newTrackingID = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	p := createTestParcel(t, svc)

	assert.Equal(t, fresh, p.TrackingID)

	events := eventsFor(t, db, fresh)
	require.Len(t, events, 1)
	assert.Equal(t, "created", events[0].Status)
}

func TestAssignRequiresPayment(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)
	r := createApprovedRider(t, db)

	_, err := svc.Assign(p.ID, r.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paid")

	var unchanged riderModel.Rider
	require.NoError(t, db.First(&unchanged, r.ID).Error)
	assert.Equal(t, riderModel.WorkStatusAvailable, unchanged.WorkStatus)
}

func TestAssignSetsRiderBusy(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)
	r := createApprovedRider(t, db)
	markPaid(t, db, p)

	assigned, err := svc.Assign(p.ID, r.ID)
	require.NoError(t, err)

	assert.Equal(t, parcelModel.DeliveryStatusDriverAssigned, assigned.DeliveryStatus)
	require.NotNil(t, assigned.RiderID)
	assert.Equal(t, r.ID, *assigned.RiderID)
	require.NotNil(t, assigned.RiderEmail)
	assert.Equal(t, r.Email, *assigned.RiderEmail)

	var busy riderModel.Rider
	require.NoError(t, db.First(&busy, r.ID).Error)
	assert.Equal(t, riderModel.WorkStatusInDelivery, busy.WorkStatus)

	// Second assignment on the same parcel must be refused.
	_, err = svc.Assign(p.ID, r.ID)
	assert.Error(t, err)
}

func TestDeliveredFreesRider(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)
	r := createApprovedRider(t, db)
	markPaid(t, db, p)

	_, err := svc.Assign(p.ID, r.ID)
	require.NoError(t, err)

	delivered, err := svc.UpdateStatus(p.ID, parcelModel.DeliveryStatusDelivered, 0)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.DeliveryStatusDelivered, delivered.DeliveryStatus)

	var freed riderModel.Rider
	require.NoError(t, db.First(&freed, r.ID).Error)
	assert.Equal(t, riderModel.WorkStatusAvailable, freed.WorkStatus)

	events := eventsFor(t, db, p.TrackingID)
	last := events[len(events)-1]
	assert.Equal(t, "parcel_delivered", last.Status)
	assert.Equal(t, "Parcel Delivered", last.Details)
}

func TestUpdateStatusRejectsUnknownCode(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)

	_, err := svc.UpdateStatus(p.ID, parcelModel.DeliveryStatus("teleported"), 0)
	require.Error(t, err)

	// No event appended for a rejected code.
	assert.Len(t, eventsFor(t, db, p.TrackingID), 1)
}

func TestRejectClearsRiderAndFreesThem(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)
	r := createApprovedRider(t, db)
	markPaid(t, db, p)

	_, err := svc.Assign(p.ID, r.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(p.ID, parcelModel.DeliveryStatusRejected)
	require.NoError(t, err)

	assert.Equal(t, parcelModel.DeliveryStatusRejected, rejected.DeliveryStatus)
	assert.Nil(t, rejected.RiderID)
	assert.Nil(t, rejected.RiderName)
	assert.Nil(t, rejected.RiderEmail)

	var reloaded parcelModel.Parcel
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Nil(t, reloaded.RiderID)

	var freed riderModel.Rider
	require.NoError(t, db.First(&freed, r.ID).Error)
	assert.Equal(t, riderModel.WorkStatusAvailable, freed.WorkStatus)
}

func TestDeleteKeepsTrackingHistory(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)

	require.NoError(t, svc.Delete(p.ID))

	_, err := svc.GetByID(p.ID)
	assert.Error(t, err)

	// The event log outlives the parcel.
	assert.NotEmpty(t, eventsFor(t, db, p.TrackingID))
}

func TestListFilters(t *testing.T) {
	svc, db := newTestService(t)

	first := createTestParcel(t, svc)
	second := createTestParcel(t, svc)
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("id = ?", second.ID).
		Update("sender_email", "other@example.com").Error)

	mine, err := svc.List("karim@example.com", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	created, err := svc.List("", string(parcelModel.DeliveryStatusCreated))
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestDeliveredPerDayCountsFromEventLog(t *testing.T) {
	svc, db := newTestService(t)

	p := createTestParcel(t, svc)
	r := createApprovedRider(t, db)
	markPaid(t, db, p)

	_, err := svc.Assign(p.ID, r.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(p.ID, parcelModel.DeliveryStatusDelivered, 0)
	require.NoError(t, err)

	// A second parcel still in flight must not be counted.
	createTestParcel(t, svc)

	counts, err := svc.DeliveredPerDay(7)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(1), counts[0].Count)
}
