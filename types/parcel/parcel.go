package parcel

import (
	"zap-shift/types"
)

// ParcelCreateRequest is the payload for creating a parcel.
type ParcelCreateRequest struct {
	Title            string  `json:"title" validate:"required,min=1,max=255"`
	Type             string  `json:"type" validate:"omitempty,max=50"`
	WeightKG         float64 `json:"weight_kg" validate:"omitempty,gte=0"`
	Cost             float64 `json:"cost" validate:"required,gt=0"`
	SenderName       string  `json:"sender_name" validate:"required,min=1,max=255"`
	SenderEmail      string  `json:"sender_email" validate:"required,email"`
	SenderPhone      string  `json:"sender_phone" validate:"omitempty,max=20"`
	SenderAddress    string  `json:"sender_address" validate:"required,min=1"`
	ReceiverName     string  `json:"receiver_name" validate:"required,min=1,max=255"`
	ReceiverEmail    string  `json:"receiver_email" validate:"omitempty,email"`
	ReceiverPhone    string  `json:"receiver_phone" validate:"omitempty,max=20"`
	ReceiverAddress  string  `json:"receiver_address" validate:"required,min=1"`
	ReceiverDistrict string  `json:"receiver_district" validate:"omitempty,max=120"`
}

func (r ParcelCreateRequest) Validate() error {
	return types.Validate(r)
}

// AssignRiderRequest names the rider to put on a parcel.
type AssignRiderRequest struct {
	RiderID uint `json:"rider_id" validate:"required"`
}

func (r AssignRiderRequest) Validate() error {
	return types.Validate(r)
}

// UpdateStatusRequest sets a new delivery status. RiderID identifies the
// assigned rider so the delivered side effect can free them.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	RiderID uint   `json:"rider_id" validate:"omitempty"`
}

func (r UpdateStatusRequest) Validate() error {
	return types.Validate(r)
}

// RejectRequest undoes an assignment and sets the parcel to the given status.
type RejectRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r RejectRequest) Validate() error {
	return types.Validate(r)
}
