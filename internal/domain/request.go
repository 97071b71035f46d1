package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request is a free-text request submitted by a user and reviewed by staff.
// Status uses single-character codes; an empty status means the request has
// not been reviewed yet.
type Request struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.UUID     `json:"-" db:"user_id"`
	Name      *string       `json:"name,omitempty" db:"owner_name"`
	Message   string        `json:"message" db:"message"`
	Checked   bool          `json:"checked" db:"checked"`
	Status    RequestStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

type RequestStatus string

const (
	StatusUnset    RequestStatus = ""
	StatusApproved RequestStatus = "A"
	StatusRejected RequestStatus = "R"
)

// IsValid reports whether the status is a reviewable outcome. StatusUnset is
// the initial state and never a valid target for a review.
func (s RequestStatus) IsValid() bool {
	return s == StatusApproved || s == StatusRejected
}

type CreateRequestInput struct {
	Message string `json:"message" validate:"required"`
}

type UpdateRequestStatusInput struct {
	Status RequestStatus `json:"status" validate:"required,oneof=A R"`
}
