package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

func TestRouteDashboard(t *testing.T) {
	cases := []struct {
		name string
		role *models.Role
		want DashboardVariant
	}{
		{"no session", nil, Unauthenticated},
		{"seeker individual", rolePtr(models.RoleSeekerIndividual), ServiceSeekerDashboard},
		{"seeker entity admin", rolePtr(models.RoleSeekerEntityAdmin), ServiceSeekerDashboard},
		{"seeker team member", rolePtr(models.RoleSeekerTeamMember), ServiceSeekerDashboard},
		{"provider individual", rolePtr(models.RoleProviderIndividual), ServiceProviderDashboard},
		{"provider entity admin", rolePtr(models.RoleProviderEntityAdmin), ServiceProviderDashboard},
		{"provider team member", rolePtr(models.RoleProviderTeamMember), ServiceProviderDashboard},
		{"unknown role", rolePtr(models.Role("auditor")), AccessRestricted},
		{"empty role", rolePtr(models.Role("")), AccessRestricted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RouteDashboard(tc.role))
		})
	}
}

func TestRouteProfileFormTotalOverRoles(t *testing.T) {
	// Every known role gets its own form; each variant appears exactly once.
	seen := map[FormVariant]bool{}
	for _, role := range models.AllRoles {
		v := RouteProfileForm(&role)
		assert.NotEqual(t, FormUnsupportedRole, v, "role %s", role)
		assert.False(t, seen[v], "variant %s reused", v)
		seen[v] = true
	}

	assert.Equal(t, FormUnsupportedRole, RouteProfileForm(nil))
	bad := models.Role("auditor")
	assert.Equal(t, FormUnsupportedRole, RouteProfileForm(&bad))
}

func TestDashboardSections(t *testing.T) {
	assert.Contains(t, DashboardSections(ServiceSeekerDashboard), "service_requests")
	assert.Contains(t, DashboardSections(ServiceProviderDashboard), "open_opportunities")
	assert.Nil(t, DashboardSections(Unauthenticated))
	assert.Nil(t, DashboardSections(AccessRestricted))
}

func TestBadgeFor(t *testing.T) {
	cases := []struct {
		status string
		want   Badge
	}{
		{"Active", BadgeSuccess},
		{"Inactive", BadgeMuted},
		{"In Progress", BadgeInfo},
		{"Review", BadgeWarning},
		{"Open", BadgeSecondary},
		{"Closed", BadgeSuccess},
		{"Cancelled", BadgeMuted},
		{"", BadgeMuted},
		{"active", BadgeMuted}, // lookup is case-sensitive
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BadgeFor(tc.status), "status %q", tc.status)
	}
}

func rolePtr(r models.Role) *models.Role { return &r }
