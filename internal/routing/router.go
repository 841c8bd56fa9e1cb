package routing

import "github.com/Prachiopenxcell/platform998_be/internal/models"

// DashboardVariant is the rendering branch selected for a session. Dispatch
// is total: every role maps to exactly one branch, absence of a session and
// unknown roles map to defined fallback branches rather than erroring.
type DashboardVariant string

const (
	Unauthenticated          DashboardVariant = "unauthenticated"
	ServiceSeekerDashboard   DashboardVariant = "service_seeker"
	ServiceProviderDashboard DashboardVariant = "service_provider"
	AccessRestricted         DashboardVariant = "access_restricted"
)

func RouteDashboard(role *models.Role) DashboardVariant {
	if role == nil {
		return Unauthenticated
	}
	switch {
	case role.IsSeeker():
		return ServiceSeekerDashboard
	case role.IsProvider():
		return ServiceProviderDashboard
	default:
		return AccessRestricted
	}
}

type FormVariant string

const (
	FormSeekerIndividual    FormVariant = "seeker_individual_form"
	FormSeekerEntityAdmin   FormVariant = "seeker_entity_admin_form"
	FormSeekerTeamMember    FormVariant = "seeker_team_member_form"
	FormProviderIndividual  FormVariant = "provider_individual_form"
	FormProviderEntityAdmin FormVariant = "provider_entity_admin_form"
	FormProviderTeamMember  FormVariant = "provider_team_member_form"
	FormUnsupportedRole     FormVariant = "unsupported_role"
)

var formVariants = map[models.Role]FormVariant{
	models.RoleSeekerIndividual:     FormSeekerIndividual,
	models.RoleSeekerEntityAdmin:    FormSeekerEntityAdmin,
	models.RoleSeekerTeamMember:     FormSeekerTeamMember,
	models.RoleProviderIndividual:   FormProviderIndividual,
	models.RoleProviderEntityAdmin:  FormProviderEntityAdmin,
	models.RoleProviderTeamMember:   FormProviderTeamMember,
}

// RouteProfileForm selects one of the six profile form variants. An
// unrecognized role is a defined terminal state, not a fatal condition.
func RouteProfileForm(role *models.Role) FormVariant {
	if role == nil {
		return FormUnsupportedRole
	}
	if v, ok := formVariants[*role]; ok {
		return v
	}
	return FormUnsupportedRole
}

// DashboardSections lists which panels a dashboard variant renders.
func DashboardSections(v DashboardVariant) []string {
	switch v {
	case ServiceSeekerDashboard:
		return []string{"profile_completion", "service_requests", "work_orders", "notifications", "subscriptions"}
	case ServiceProviderDashboard:
		return []string{"profile_completion", "open_opportunities", "work_orders", "earnings", "notifications", "subscriptions"}
	default:
		return nil
	}
}
