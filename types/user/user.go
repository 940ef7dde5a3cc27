package user

import (
	"zap-shift/types"
)

// UserUpsertRequest is sent after a client-side login; it creates the account
// on first sight and refreshes the last login stamp afterwards.
type UserUpsertRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=255"`
}

func (r UserUpsertRequest) Validate() error {
	return types.Validate(r)
}

// RoleUpdateRequest changes a user's role; admin only.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=user rider admin"`
}

func (r RoleUpdateRequest) Validate() error {
	return types.Validate(r)
}
