package eoi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeKeyDates(t *testing.T) {
	pub := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	off := DayOffsets{Submission: 15, ProvisionalList: 25, Objection: 30, FinalList: 40}

	dates := ComputeKeyDates(pub, off)

	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), dates.SubmissionDeadline)
	assert.Equal(t, time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC), dates.ProvisionalListDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), dates.ObjectionWindowClose)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), dates.FinalListDate)
}

func TestComputeKeyDatesCrossesMonthEnd(t *testing.T) {
	pub := time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC)
	dates := ComputeKeyDates(pub, DayOffsets{Submission: 15})

	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), dates.SubmissionDeadline)
}

func TestRenderInvitation(t *testing.T) {
	pub := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	text, err := RenderInvitation(InvitationData{
		ReferenceNo:         "EOI-4K9PTXVJ",
		CorporateDebtorName: "Acme Industries Ltd",
		ProfessionalName:    "R. Sharma",
		RegistrationNo:      "IBBI/IPA-001/2020",
		PublicationDate:     pub,
		Dates:               ComputeKeyDates(pub, DayOffsets{Submission: 15, ProvisionalList: 25, Objection: 30, FinalList: 40}),
	})
	require.NoError(t, err)

	assert.Contains(t, text, "EXPRESSION OF INTEREST (EOI-4K9PTXVJ)")
	assert.Contains(t, text, "Acme Industries Ltd")
	assert.Contains(t, text, "published on 01 March 2026")
	assert.Contains(t, text, "Last date for submission of EOI: 16 March 2026")
	assert.Contains(t, text, "Date of issue of final list: 10 April 2026")
}

func TestValidateEmails(t *testing.T) {
	assert.Empty(t, ValidateEmails([]string{"coc@example.com", "  second@example.org  "}))

	problems := ValidateEmails([]string{"not-an-email", "", "ok@example.com"})
	require.Len(t, problems, 2)
	assert.Equal(t, "invalid email address: not-an-email", problems[0])
	assert.Equal(t, "empty email address", problems[1])

	assert.Equal(t, []string{"at least one recipient is required"}, ValidateEmails(nil))
}
