package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSeekerIndividual    Role = "seeker_individual"
	RoleSeekerEntityAdmin   Role = "seeker_entity_admin"
	RoleSeekerTeamMember    Role = "seeker_team_member"
	RoleProviderIndividual  Role = "provider_individual"
	RoleProviderEntityAdmin Role = "provider_entity_admin"
	RoleProviderTeamMember  Role = "provider_team_member"
)

// AllRoles is the closed set of roles assignable at registration.
var AllRoles = []Role{
	RoleSeekerIndividual,
	RoleSeekerEntityAdmin,
	RoleSeekerTeamMember,
	RoleProviderIndividual,
	RoleProviderEntityAdmin,
	RoleProviderTeamMember,
}

// ParseRole normalizes a raw role string and reports whether it is one of
// the six platform roles. An unknown value is not treated as an error by
// callers that route on roles; it maps to a fallback branch instead.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return r, false
}

func (r Role) IsSeeker() bool {
	return r == RoleSeekerIndividual || r == RoleSeekerEntityAdmin || r == RoleSeekerTeamMember
}

func (r Role) IsProvider() bool {
	return r == RoleProviderIndividual || r == RoleProviderEntityAdmin || r == RoleProviderTeamMember
}

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone string    `gorm:"type:varchar(30);uniqueIndex" json:"phone"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(30);not null;index" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
}
