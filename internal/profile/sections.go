package profile

import "github.com/Prachiopenxcell/platform998_be/internal/models"

// Section is one tab of the profile wizard. The ordered sequence is fixed
// per role at definition time.
type Section struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Required bool   `json:"required"`
	Order    int    `json:"order"`
}

var (
	secBasic    = Section{ID: "basic", Title: "Basic Details", Required: true}
	secAddress  = Section{ID: "address", Title: "Address", Required: true}
	secIdentity = Section{ID: "identity", Title: "Identity Document", Required: true}
	secEntity   = Section{ID: "entity", Title: "Entity & Authorized Representative", Required: true}
	secServices = Section{ID: "services", Title: "Services & Infrastructure", Required: true}
	secBanking  = Section{ID: "banking", Title: "Banking Details", Required: true}
)

var sectionsByRole = map[models.Role][]Section{
	models.RoleSeekerTeamMember:   ordered(secBasic, secAddress, secIdentity),
	models.RoleProviderTeamMember: ordered(secBasic, secAddress, secIdentity, secServices),

	models.RoleSeekerIndividual:   ordered(secBasic, secAddress, secIdentity, secBanking),
	models.RoleProviderIndividual: ordered(secBasic, secAddress, secIdentity, secServices, secBanking),

	models.RoleSeekerEntityAdmin:   ordered(secBasic, secAddress, secIdentity, secEntity, secBanking),
	models.RoleProviderEntityAdmin: ordered(secBasic, secAddress, secIdentity, secEntity, secServices, secBanking),
}

// SectionsFor returns the wizard sections for a role, in order. Unknown
// roles fall back to the core three sections so the wizard never mounts
// empty.
func SectionsFor(role models.Role) []Section {
	if s, ok := sectionsByRole[role]; ok {
		return s
	}
	return ordered(secBasic, secAddress, secIdentity)
}

func ordered(secs ...Section) []Section {
	out := make([]Section, len(secs))
	for i, s := range secs {
		s.Order = i
		out[i] = s
	}
	return out
}
