package rider

import (
	"zap-shift/types"
)

// RiderApplyRequest is the payload for a new rider application.
type RiderApplyRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=255"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,max=20"`
	Age              int    `json:"age" validate:"required,gte=18"`
	Region           string `json:"region" validate:"omitempty,max=120"`
	District         string `json:"district" validate:"required,max=120"`
	NID              string `json:"nid" validate:"required,max=50"`
	BikeBrand        string `json:"bike_brand" validate:"omitempty,max=120"`
	BikeRegistration string `json:"bike_registration" validate:"omitempty,max=120"`
}

func (r RiderApplyRequest) Validate() error {
	return types.Validate(r)
}

// RiderStatusUpdateRequest approves or rejects an application. Email is the
// linked user account whose role follows the decision.
type RiderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	Email  string `json:"email" validate:"required,email"`
}

func (r RiderStatusUpdateRequest) Validate() error {
	return types.Validate(r)
}
