package profile

import (
	"math"
	"strings"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

// CompletionStatus is derived, never stored: a pure function of the current
// record and role, recomputed on every field mutation.
//
// FieldsComplete and EligibleForPermanentID are two related but distinct
// gates. The percentage counts declarative field values only; file presence,
// account-number equality and verification status feed the stricter
// permanent-registration gate and never move the percentage.
type CompletionStatus struct {
	OverallPercentage      int      `json:"overall_percentage"`
	MissingMandatoryFields []string `json:"missing_mandatory_fields"`
	FieldsComplete         bool     `json:"fields_complete"`
	BankAccountMismatch    bool     `json:"bank_account_mismatch"`
	EligibleForPermanentID bool     `json:"eligible_for_permanent_id"`
}

// Calculate walks the role's requirement table over the record. Calling it
// twice with the same input yields the same output; it performs no I/O.
func Calculate(rec Record, role models.Role) CompletionStatus {
	reqs := RequirementsFor(role)

	mandatory := 0
	complete := 0
	var missing []string
	for _, r := range reqs {
		if !r.Required {
			continue
		}
		mandatory++
		if filled(Resolve(rec, r.Path)) {
			complete++
		} else {
			missing = append(missing, r.Path)
		}
	}

	// A role with no mandatory fields is fully complete, not a division
	// error.
	pct := 100
	if mandatory > 0 {
		pct = roundHalfUp(100 * float64(complete) / float64(mandatory))
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	st := CompletionStatus{
		OverallPercentage:      pct,
		MissingMandatoryFields: missing,
		FieldsComplete:         pct == 100,
		BankAccountMismatch:    bankMismatch(rec),
	}
	st.EligibleForPermanentID = st.FieldsComplete &&
		!st.BankAccountMismatch &&
		hasIdentityFile(rec) &&
		identityVerified(rec)
	return st
}

// filled reports whether a resolved value counts toward completion. Strings
// must be non-whitespace; numbers and bools count whenever present, zero
// included (staff counts of zero are legitimate answers); collections count
// when non-empty.
func filled(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case bool:
		return true
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func bankMismatch(rec Record) bool {
	rows, _ := rec["bankingDetails"].([]any)
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		acc, _ := row["accountNumber"].(string)
		confirm, _ := row["confirmAccountNumber"].(string)
		if strings.TrimSpace(acc) == "" && strings.TrimSpace(confirm) == "" {
			continue
		}
		if acc != confirm {
			return true
		}
	}
	return false
}

func hasIdentityFile(rec Record) bool {
	return filled(Resolve(rec, "identityDocument.uploadedFile"))
}

func identityVerified(rec Record) bool {
	status, _ := Resolve(rec, "identityDocument.verificationStatus").(string)
	return status == string(models.VerificationVerified)
}
