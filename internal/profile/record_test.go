package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

func TestResolve(t *testing.T) {
	rec := Record{
		"name": "Asha Verma",
		"address": map[string]any{
			"city": "Pune",
		},
		"bankingDetails": []any{
			map[string]any{"ifscCode": "HDFC0000123"},
		},
	}

	cases := []struct {
		path string
		want any
	}{
		{"name", "Asha Verma"},
		{"address.city", "Pune"},
		{"bankingDetails[0].ifscCode", "HDFC0000123"},
		{"address.street", nil},
		{"bankingDetails[1].ifscCode", nil},
		{"missing.deeply.nested", nil},
		{"name.child", nil},
		{"bad[path", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Resolve(rec, tc.path), "path %s", tc.path)
	}
}

func TestSetCreatesIntermediates(t *testing.T) {
	rec := Record{}

	require.NoError(t, Set(rec, "address.city", "Pune"))
	require.NoError(t, Set(rec, "bankingDetails[1].ifscCode", "HDFC0000123"))

	assert.Equal(t, "Pune", Resolve(rec, "address.city"))
	assert.Equal(t, "HDFC0000123", Resolve(rec, "bankingDetails[1].ifscCode"))

	// The slice grew to fit the index; the hole is an empty object.
	rows, ok := rec["bankingDetails"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestSetOverwrites(t *testing.T) {
	rec := Record{}
	require.NoError(t, Set(rec, "name", "Asha"))
	require.NoError(t, Set(rec, "name", "Asha Verma"))
	assert.Equal(t, "Asha Verma", Resolve(rec, "name"))
}

func TestSetRejectsBadPaths(t *testing.T) {
	rec := Record{}

	assert.Error(t, Set(rec, "a..b", "x"))
	assert.Error(t, Set(rec, "list[x].field", "x"))
	assert.Error(t, Set(rec, "list[-1]", "x"))
	assert.Error(t, Set(rec, "list[0", "x"))
}

func TestRecordOfMergesExtensions(t *testing.T) {
	p := &models.Profile{
		Name:               "Asha Verma",
		Email:              "asha@example.com",
		ContactNumber:      "9876543210",
		AddressCity:        "Pune",
		VerificationStatus: models.VerificationVerified,
		BankingDetails: []models.BankingDetail{
			{BeneficiaryName: "Asha Verma", AccountNumber: "12345678", ConfirmAccountNumber: "12345678"},
		},
		Extensions: datatypes.JSON(`{"entity":{"name":"Acme Advisors LLP"},"servicesOffered":["audit"]}`),
	}

	rec := RecordOf(p)

	assert.Equal(t, "Asha Verma", Resolve(rec, "name"))
	assert.Equal(t, "Pune", Resolve(rec, "address.city"))
	assert.Equal(t, "verified", Resolve(rec, "identityDocument.verificationStatus"))
	assert.Equal(t, "12345678", Resolve(rec, "bankingDetails[0].accountNumber"))
	assert.Equal(t, "Acme Advisors LLP", Resolve(rec, "entity.name"))
	assert.Equal(t, []any{"audit"}, Resolve(rec, "servicesOffered"))
}
