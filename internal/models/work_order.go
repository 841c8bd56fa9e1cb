package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkOrderStatus string

const (
	WorkOrderActive     WorkOrderStatus = "Active"
	WorkOrderInactive   WorkOrderStatus = "Inactive"
	WorkOrderInProgress WorkOrderStatus = "In Progress"
	WorkOrderReview     WorkOrderStatus = "Review"
	WorkOrderClosed     WorkOrderStatus = "Closed"
)

type WorkOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderCode  string    `gorm:"unique;size:12" json:"order_code"`
	SeekerID   uuid.UUID `gorm:"type:uuid;index" json:"seeker_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index" json:"provider_id"`

	Title  string          `json:"title"`
	Amount int64           `json:"amount"`
	Status WorkOrderStatus `gorm:"type:varchar(20);default:'Active'" json:"status"`

	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Seeker   *User `gorm:"foreignKey:SeekerID" json:"seeker,omitempty"`
	Provider *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
