package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

func teamMemberRecord() Record {
	return Record{
		"name":          "Asha Verma",
		"email":         "asha@example.com",
		"contactNumber": "9876543210",
		"address": map[string]any{
			"street":  "14 MG Road",
			"city":    "Pune",
			"state":   "Maharashtra",
			"pinCode": "411001",
		},
		"identityDocument": map[string]any{
			"type":   "pan",
			"number": "ABCDE1234F",
		},
	}
}

func TestCalculateFullCompletion(t *testing.T) {
	st := Calculate(teamMemberRecord(), models.RoleSeekerTeamMember)

	assert.Equal(t, 100, st.OverallPercentage)
	assert.True(t, st.FieldsComplete)
	assert.Empty(t, st.MissingMandatoryFields)
}

func TestCalculatePartialCompletion(t *testing.T) {
	// 2 of the 9 mandatory team-member fields filled: 22.22 rounds to 22.
	rec := Record{
		"name":  "Asha Verma",
		"email": "asha@example.com",
	}
	st := Calculate(rec, models.RoleSeekerTeamMember)

	assert.Equal(t, 22, st.OverallPercentage)
	assert.False(t, st.FieldsComplete)
	assert.Len(t, st.MissingMandatoryFields, 7)
	assert.Contains(t, st.MissingMandatoryFields, "address.pinCode")
}

func TestCalculateEmptyRecord(t *testing.T) {
	st := Calculate(Record{}, models.RoleSeekerTeamMember)

	assert.Equal(t, 0, st.OverallPercentage)
	assert.False(t, st.FieldsComplete)
	assert.Len(t, st.MissingMandatoryFields, 9)
}

func TestCalculateUnknownRoleIsComplete(t *testing.T) {
	// No requirement table means no mandatory fields, not a division error.
	st := Calculate(Record{}, models.Role("auditor"))

	assert.Equal(t, 100, st.OverallPercentage)
	assert.True(t, st.FieldsComplete)
	assert.Empty(t, st.MissingMandatoryFields)
}

func TestCalculateDeterministic(t *testing.T) {
	rec := teamMemberRecord()
	first := Calculate(rec, models.RoleSeekerTeamMember)
	second := Calculate(rec, models.RoleSeekerTeamMember)

	assert.Equal(t, first, second)
}

func TestCalculateMonotonic(t *testing.T) {
	rec := Record{}
	prev := Calculate(rec, models.RoleSeekerIndividual).OverallPercentage

	for _, r := range RequirementsFor(models.RoleSeekerIndividual) {
		require.NoError(t, Set(rec, r.Path, "value"))
		pct := Calculate(rec, models.RoleSeekerIndividual).OverallPercentage
		assert.GreaterOrEqual(t, pct, prev, "filling %s decreased the percentage", r.Path)
		prev = pct
	}
	assert.Equal(t, 100, prev)
}

func TestCalculateBounds(t *testing.T) {
	for _, role := range models.AllRoles {
		for _, rec := range []Record{{}, teamMemberRecord()} {
			st := Calculate(rec, role)
			assert.GreaterOrEqual(t, st.OverallPercentage, 0)
			assert.LessOrEqual(t, st.OverallPercentage, 100)
		}
	}
}

func TestCalculateZeroStaffCountCounts(t *testing.T) {
	rec := teamMemberRecord()
	require.NoError(t, Set(rec, "servicesOffered", []any{"bookkeeping"}))
	require.NoError(t, Set(rec, "resourceInfra.staffCount", float64(0)))

	st := Calculate(rec, models.RoleProviderIndividual)
	assert.NotContains(t, st.MissingMandatoryFields, "resourceInfra.staffCount")
	assert.Contains(t, st.MissingMandatoryFields, "bankingDetails[0].ifscCode")
}

func TestBankMismatchDoesNotMovePercentage(t *testing.T) {
	rec := teamMemberRecord()
	for _, kv := range []struct{ path, val string }{
		{"bankingDetails[0].beneficiaryName", "Asha Verma"},
		{"bankingDetails[0].accountNumber", "12345678"},
		{"bankingDetails[0].confirmAccountNumber", "87654321"},
		{"bankingDetails[0].accountType", "savings"},
		{"bankingDetails[0].ifscCode", "HDFC0000123"},
	} {
		require.NoError(t, Set(rec, kv.path, kv.val))
	}

	st := Calculate(rec, models.RoleSeekerIndividual)

	assert.Equal(t, 100, st.OverallPercentage)
	assert.True(t, st.FieldsComplete)
	assert.True(t, st.BankAccountMismatch)
	assert.False(t, st.EligibleForPermanentID)
}

func TestBankMismatchIgnoresEmptyRows(t *testing.T) {
	rec := Record{
		"bankingDetails": []any{
			map[string]any{"accountNumber": "", "confirmAccountNumber": ""},
		},
	}
	st := Calculate(rec, models.RoleSeekerTeamMember)
	assert.False(t, st.BankAccountMismatch)
}

func TestEligibleForPermanentID(t *testing.T) {
	rec := teamMemberRecord()
	require.NoError(t, Set(rec, "identityDocument.uploadedFile", "/uploads/pan.pdf"))
	require.NoError(t, Set(rec, "identityDocument.verificationStatus", "verified"))

	st := Calculate(rec, models.RoleSeekerTeamMember)
	assert.True(t, st.EligibleForPermanentID)

	// Without verification the stricter gate stays closed even at 100%.
	require.NoError(t, Set(rec, "identityDocument.verificationStatus", "pending"))
	st = Calculate(rec, models.RoleSeekerTeamMember)
	assert.Equal(t, 100, st.OverallPercentage)
	assert.False(t, st.EligibleForPermanentID)
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{22.22, 22},
		{49.5, 50},
		{50.4, 50},
		{99.5, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, roundHalfUp(tc.in), "roundHalfUp(%v)", tc.in)
	}
}
