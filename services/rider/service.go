package rider

import (
	"errors"
	"fmt"

	"zap-shift/httperror"
	"zap-shift/logger"
	parcelModel "zap-shift/models/parcel"
	riderModel "zap-shift/models/rider"
	userModel "zap-shift/models/user"
	riderTypes "zap-shift/types/rider"

	"gorm.io/gorm"
)

// RiderService owns rider admission state. Admission changes drive the linked
// user's role: approval makes the account a rider, anything else reverts it to
// a plain user. Work status is not touched here; only the parcel service flips
// it.
type RiderService struct {
	DB *gorm.DB
}

func NewRiderService(db *gorm.DB) *RiderService {
	return &RiderService{DB: db}
}

// Apply stores a new application in the pending state.
func (rs *RiderService) Apply(req riderTypes.RiderApplyRequest) (*riderModel.Rider, error) {
	r := riderModel.Rider{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		Region:           req.Region,
		District:         req.District,
		NID:              req.NID,
		BikeBrand:        req.BikeBrand,
		BikeRegistration: req.BikeRegistration,
		Status:           riderModel.StatusPending,
		WorkStatus:       riderModel.WorkStatusAvailable,
	}

	if err := rs.DB.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID fetches a single rider.
func (rs *RiderService) GetByID(id uint) (*riderModel.Rider, error) {
	var r riderModel.Rider
	if err := rs.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("Rider not found")
		}
		return nil, err
	}
	return &r, nil
}

// List returns riders filtered by admission status, district and work status.
func (rs *RiderService) List(status, district, workStatus string) ([]riderModel.Rider, error) {
	query := rs.DB.Model(&riderModel.Rider{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if workStatus != "" {
		query = query.Where("work_status = ?", workStatus)
	}

	var riders []riderModel.Rider
	if err := query.Order("created_at DESC").Find(&riders).Error; err != nil {
		return nil, err
	}
	return riders, nil
}

// AvailableByDistrict lists approved riders free to take a parcel in the
// district.
func (rs *RiderService) AvailableByDistrict(district string) ([]riderModel.Rider, error) {
	var riders []riderModel.Rider
	query := rs.DB.Where("status = ? AND work_status = ?", riderModel.StatusApproved, riderModel.WorkStatusAvailable)
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if err := query.Find(&riders).Error; err != nil {
		return nil, err
	}
	return riders, nil
}

// UpdateStatus moves an application between admission states and keeps the
// linked user account's role in step: approved means role rider, any other
// state reverts the role to user. The role write follows the rider write
// sequentially; a failure is logged, not rolled back.
func (rs *RiderService) UpdateStatus(riderID uint, status riderModel.Status, email string) (*riderModel.Rider, error) {
	if !status.IsValid() {
		return nil, httperror.NewBadRequest(fmt.Sprintf("Unknown rider status: %s", status))
	}

	r, err := rs.GetByID(riderID)
	if err != nil {
		return nil, err
	}

	r.Status = status
	if err := rs.DB.Save(r).Error; err != nil {
		return nil, err
	}

	role := userModel.RoleUser
	if status == riderModel.StatusApproved {
		role = userModel.RoleRider
	}
	if err := rs.DB.Model(&userModel.User{}).Where("email = ?", email).
		Update("role", role).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update role for %s after rider status change", email), err)
	}

	return r, nil
}

// ActiveParcels returns a rider's load, excluding delivered parcels unless
// asked for.
func (rs *RiderService) ActiveParcels(riderID uint, includeCompleted bool) ([]parcelModel.Parcel, error) {
	if _, err := rs.GetByID(riderID); err != nil {
		return nil, err
	}

	query := rs.DB.Where("rider_id = ?", riderID)
	if !includeCompleted {
		query = query.Where("delivery_status <> ?", parcelModel.DeliveryStatusDelivered)
	}

	var parcels []parcelModel.Parcel
	if err := query.Order("created_at DESC").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// Delete removes a rider record.
func (rs *RiderService) Delete(riderID uint) error {
	r, err := rs.GetByID(riderID)
	if err != nil {
		return err
	}
	return rs.DB.Delete(r).Error
}
