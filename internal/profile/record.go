package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

// Record is the wizard's working view of a profile: a nested key-value
// structure addressable by dot paths such as "address.city" or
// "bankingDetails[0].ifscCode". Values follow JSON conventions
// (map[string]any, []any, string, float64, bool).
type Record map[string]any

// segment is one dot-separated piece of a path; index is -1 when the
// segment has no [i] suffix.
type segment struct {
	key   string
	index int
}

func parsePath(path string) ([]segment, error) {
	parts := strings.Split(path, ".")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}
		s := segment{key: part, index: -1}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("unclosed index in path %q", path)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("bad index in path %q", path)
			}
			s.key = part[:open]
			s.index = idx
		}
		segs = append(segs, s)
	}
	return segs, nil
}

// Resolve walks the record along path and returns the value found there.
// A missing key, short slice, or malformed path resolves to nil: an absent
// field is simply not filled, never an error for the caller.
func Resolve(rec Record, path string) any {
	segs, err := parsePath(path)
	if err != nil {
		return nil
	}

	var cur any = map[string]any(rec)
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[s.key]
		if !ok {
			return nil
		}
		if s.index >= 0 {
			arr, ok := cur.([]any)
			if !ok || s.index >= len(arr) {
				return nil
			}
			cur = arr[s.index]
		}
	}
	return cur
}

// Set writes a value at path, creating intermediate maps and growing slices
// as needed. Used by the wizard's field edits.
func Set(rec Record, path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}

	var cur any = map[string]any(rec)
	for i, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return fmt.Errorf("path %q: segment %q is not an object", path, s.key)
		}
		last := i == len(segs)-1

		if s.index < 0 {
			if last {
				m[s.key] = value
				return nil
			}
			next, ok := m[s.key].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[s.key] = next
			}
			cur = next
			continue
		}

		arr, _ := m[s.key].([]any)
		for len(arr) <= s.index {
			arr = append(arr, map[string]any{})
		}
		m[s.key] = arr
		if last {
			arr[s.index] = value
			return nil
		}
		elem, ok := arr[s.index].(map[string]any)
		if !ok {
			elem = map[string]any{}
			arr[s.index] = elem
		}
		cur = elem
	}
	return nil
}

// RecordOf builds the wizard Record for a stored profile, merging the
// role-specific Extensions JSON over the core columns.
func RecordOf(p *models.Profile) Record {
	banking := make([]any, 0, len(p.BankingDetails))
	for _, b := range p.BankingDetails {
		banking = append(banking, map[string]any{
			"beneficiaryName":      b.BeneficiaryName,
			"accountNumber":        b.AccountNumber,
			"confirmAccountNumber": b.ConfirmAccountNumber,
			"accountType":          b.AccountType,
			"ifscCode":             b.IFSCCode,
		})
	}

	rec := Record{
		"name":          p.Name,
		"email":         p.Email,
		"contactNumber": p.ContactNumber,
		"address": map[string]any{
			"street":  p.AddressStreet,
			"city":    p.AddressCity,
			"state":   p.AddressState,
			"pinCode": p.AddressPinCode,
		},
		"identityDocument": map[string]any{
			"type":               p.IdentityDocType,
			"number":             p.IdentityDocNumber,
			"uploadedFile":       p.IdentityDocFileURL,
			"verificationStatus": string(p.VerificationStatus),
		},
		"bankingDetails": banking,
	}

	if len(p.Extensions) > 0 {
		var ext map[string]any
		if err := json.Unmarshal(p.Extensions, &ext); err == nil {
			for k, v := range ext {
				rec[k] = v
			}
		}
	}
	return rec
}
