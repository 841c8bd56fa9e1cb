package profile

import "github.com/Prachiopenxcell/platform998_be/internal/models"

// FieldRequirement describes one dot-addressable field of a role's profile
// form. The per-role tables below are the single source of truth for the
// completion percentage: the calculator walks them in order, so the
// mandatory-field set is data, not code.
type FieldRequirement struct {
	Path     string
	Required bool
}

var corePaths = []FieldRequirement{
	{Path: "name", Required: true},
	{Path: "email", Required: true},
	{Path: "contactNumber", Required: true},
	{Path: "identityDocument.type", Required: true},
	{Path: "identityDocument.number", Required: true},
	{Path: "address.street", Required: true},
	{Path: "address.city", Required: true},
	{Path: "address.state", Required: true},
	{Path: "address.pinCode", Required: true},
}

var bankingPaths = []FieldRequirement{
	{Path: "bankingDetails[0].beneficiaryName", Required: true},
	{Path: "bankingDetails[0].accountNumber", Required: true},
	{Path: "bankingDetails[0].confirmAccountNumber", Required: true},
	{Path: "bankingDetails[0].accountType", Required: true},
	{Path: "bankingDetails[0].ifscCode", Required: true},
}

var entityPaths = []FieldRequirement{
	{Path: "entity.name", Required: true},
	{Path: "entity.registrationNumber", Required: true},
	{Path: "authorizedRepresentative.name", Required: true},
	{Path: "authorizedRepresentative.email", Required: true},
	{Path: "authorizedRepresentative.contactNumber", Required: true},
}

var providerPaths = []FieldRequirement{
	{Path: "servicesOffered", Required: true},
	{Path: "resourceInfra.staffCount", Required: true},
	{Path: "resourceInfra.officeLocation", Required: false},
}

var requirements = map[models.Role][]FieldRequirement{
	// Team members carry only the core identity fields; banking and entity
	// details belong to the admin that invited them.
	models.RoleSeekerTeamMember:   corePaths,
	models.RoleProviderTeamMember: concat(corePaths, providerPaths[:1]),

	models.RoleSeekerIndividual:   concat(corePaths, bankingPaths),
	models.RoleProviderIndividual: concat(corePaths, providerPaths, bankingPaths),

	models.RoleSeekerEntityAdmin:   concat(corePaths, entityPaths, bankingPaths),
	models.RoleProviderEntityAdmin: concat(corePaths, entityPaths, providerPaths, bankingPaths),
}

// RequirementsFor returns the ordered field table for a role. Unknown roles
// get an empty table, which the calculator treats as fully complete.
func RequirementsFor(role models.Role) []FieldRequirement {
	return requirements[role]
}

func concat(lists ...[]FieldRequirement) []FieldRequirement {
	var out []FieldRequirement
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
