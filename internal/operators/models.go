package operators

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	// RoleOwner manages the event: vouchers, uploads, scan history
	RoleOwner Role = "OWNER"
	// RoleStaff runs a check-in station
	RoleStaff Role = "STAFF"
)

// Operator is a person allowed to run a station or manage an event
type Operator struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'STAFF'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Operator) TableName() string {
	return "operators"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleOwner), string(RoleStaff):
		return true
	default:
		return false
	}
}
