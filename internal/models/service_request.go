package models

import (
	"time"

	"github.com/google/uuid"
)

type ServiceRequestStatus string

const (
	RequestOpen       ServiceRequestStatus = "Open"
	RequestInProgress ServiceRequestStatus = "In Progress"
	RequestReview     ServiceRequestStatus = "Review"
	RequestClosed     ServiceRequestStatus = "Closed"
)

type ServiceRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SeekerID uuid.UUID `gorm:"type:uuid;index;not null" json:"seeker_id"`

	Title       string               `json:"title"`
	Category    string               `gorm:"type:varchar(80);index" json:"category"` // e.g. valuation, audit, legal
	Description string               `gorm:"type:text" json:"description"`
	Budget      int64                `json:"budget"`
	Status      ServiceRequestStatus `gorm:"type:varchar(20);default:'Open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Seeker *User `gorm:"foreignKey:SeekerID" json:"seeker,omitempty"`
}
