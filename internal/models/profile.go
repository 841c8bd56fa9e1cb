package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProfileStatus string

const (
	ProfileDraft     ProfileStatus = "draft"
	ProfileSubmitted ProfileStatus = "submitted"
	ProfileApproved  ProfileStatus = "approved"
	ProfileRejected  ProfileStatus = "rejected"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Role   Role      `gorm:"type:varchar(30);not null" json:"role"`

	// Wizard tracking
	SectionIndex  int           `gorm:"not null;default:0" json:"section_index"`
	Status        ProfileStatus `gorm:"type:varchar(30);not null;default:'draft'" json:"status"`
	CompletionPct int           `gorm:"not null;default:0" json:"completion_pct"`

	// Basic details
	Name          string `gorm:"type:varchar(150)" json:"name"`
	Email         string `gorm:"type:varchar(150)" json:"email"` // kept in sync with users.email
	ContactNumber string `gorm:"type:varchar(30)" json:"contact_number"`

	// Address
	AddressStreet  string `gorm:"type:text" json:"address_street"`
	AddressCity    string `gorm:"type:varchar(120)" json:"address_city"`
	AddressState   string `gorm:"type:varchar(120)" json:"address_state"`
	AddressPinCode string `gorm:"type:varchar(10)" json:"address_pin_code"`

	// Identity document
	IdentityDocType    string             `gorm:"type:varchar(30)" json:"identity_doc_type"` // PAN / Aadhaar / Passport
	IdentityDocNumber  string             `gorm:"type:varchar(40)" json:"identity_doc_number"`
	IdentityDocFileURL string             `gorm:"type:text" json:"identity_doc_file_url"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending'" json:"verification_status"`

	// Role-specific sub-records (authorized representative, resource infra,
	// services offered, entity details) live in one JSONB column; their
	// shapes differ per role variant.
	Extensions datatypes.JSON `gorm:"type:jsonb" json:"extensions"`

	PermanentRegistrationNo string `gorm:"type:varchar(64);uniqueIndex" json:"permanent_registration_no,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BankingDetails []BankingDetail `gorm:"foreignKey:ProfileID" json:"banking_details,omitempty"`
}

type BankingDetail struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"profile_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`

	BeneficiaryName      string `gorm:"type:varchar(150)" json:"beneficiary_name"`
	AccountNumber        string `gorm:"type:varchar(34)" json:"account_number"`
	ConfirmAccountNumber string `gorm:"type:varchar(34)" json:"confirm_account_number"`
	AccountType          string `gorm:"type:varchar(30)" json:"account_type"` // savings / current
	IFSCCode             string `gorm:"type:varchar(11)" json:"ifsc_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
