package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EOIStatus string

const (
	EOIDraft     EOIStatus = "draft"
	EOIPublished EOIStatus = "published"
	EOIClosed    EOIStatus = "closed"
)

// EOI is an Expression of Interest invitation used in insolvency-resolution
// workflows. The builder edits it tab by tab; the free-form tabs are stored
// as JSONB since their shape varies by process type.
type EOI struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatorID uuid.UUID `gorm:"type:uuid;index;not null" json:"creator_id"`

	ReferenceNo string    `gorm:"unique;size:20" json:"reference_no"` // e.g. EOI-4K9PTXVJ
	Status      EOIStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`

	// Tab 1: invitation details
	CorporateDebtorName string     `gorm:"type:varchar(200)" json:"corporate_debtor_name"`
	ProfessionalName    string     `gorm:"type:varchar(150)" json:"professional_name"`
	RegistrationNo      string     `gorm:"type:varchar(64)" json:"registration_no"`
	PublicationDate     *time.Time `json:"publication_date,omitempty"`

	// Key dates, derived from the publication date
	SubmissionDeadline   *time.Time `json:"submission_deadline,omitempty"`
	ProvisionalListDate  *time.Time `json:"provisional_list_date,omitempty"`
	ObjectionWindowClose *time.Time `json:"objection_window_close,omitempty"`
	FinalListDate        *time.Time `json:"final_list_date,omitempty"`

	// Tabs 2-3: eligibility criteria and evaluation matrix
	Eligibility      datatypes.JSON `gorm:"type:jsonb" json:"eligibility"`
	EvaluationMatrix datatypes.JSON `gorm:"type:jsonb" json:"evaluation_matrix"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator    *User       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	COCMembers []COCMember `gorm:"foreignKey:EOIID" json:"coc_members,omitempty"`
}

// COCMember is a Committee of Creditors contact attached to an EOI.
type COCMember struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EOIID uuid.UUID `gorm:"type:uuid;index;not null" json:"eoi_id"`

	Name        string  `gorm:"type:varchar(150);not null" json:"name"`
	Email       string  `gorm:"type:varchar(150);not null" json:"email"`
	VotingShare float64 `json:"voting_share"`

	CreatedAt time.Time `json:"created_at"`
}

// GenerateEOIReference generates a random alphanumeric reference number.
func GenerateEOIReference() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return "EOI-" + string(b)
}
