package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"seeker_individual", RoleSeekerIndividual, true},
		{"  Provider_Entity_Admin  ", RoleProviderEntityAdmin, true},
		{"SEEKER_TEAM_MEMBER", RoleSeekerTeamMember, true},
		{"admin", Role("admin"), false},
		{"", Role(""), false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
	}
}

func TestRoleSides(t *testing.T) {
	for _, r := range AllRoles {
		assert.NotEqual(t, r.IsSeeker(), r.IsProvider(), "role %s must sit on exactly one side", r)
	}
	assert.False(t, Role("admin").IsSeeker())
	assert.False(t, Role("admin").IsProvider())
}

func TestGenerateEOIReference(t *testing.T) {
	ref := GenerateEOIReference()
	assert.Len(t, ref, 12)
	assert.Equal(t, "EOI-", ref[:4])
	for _, ch := range ref[4:] {
		assert.True(t, (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'), "unexpected char %q", ch)
	}
}
