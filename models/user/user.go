package user

import (
	"time"
)

// User is keyed by email, which is the identity provider's verified claim.
// The Role column is the authorization source of truth; it is looked up per
// request, never cached, so role changes apply on the next request.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name  string `gorm:"size:255" json:"name"`
	Role  Role   `gorm:"size:20;not null;default:user" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastLogIn time.Time `json:"last_log_in"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleRider, RoleAdmin:
		return true
	default:
		return false
	}
}
