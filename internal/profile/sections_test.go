package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

func TestSectionsFor(t *testing.T) {
	assert.Len(t, SectionsFor(models.RoleSeekerTeamMember), 3)
	assert.Len(t, SectionsFor(models.RoleSeekerIndividual), 4)
	assert.Len(t, SectionsFor(models.RoleProviderEntityAdmin), 6)

	// Unknown roles still get a mountable wizard.
	fallback := SectionsFor(models.Role("auditor"))
	assert.Len(t, fallback, 3)
	assert.Equal(t, "basic", fallback[0].ID)
}

func TestSectionsAreOrdered(t *testing.T) {
	for _, role := range models.AllRoles {
		secs := SectionsFor(role)
		for i, s := range secs {
			assert.Equal(t, i, s.Order, "role %s section %s", role, s.ID)
		}
		// Banking, when present, is always the closing section.
		last := secs[len(secs)-1]
		if last.ID != "banking" {
			assert.Contains(t, []string{"identity", "services"}, last.ID)
		}
	}
}
