package eoi

import (
	"fmt"
	"net/mail"
	"strings"
	"text/template"
	"time"
)

// InvitationData feeds the published invitation text.
type InvitationData struct {
	ReferenceNo         string
	CorporateDebtorName string
	ProfessionalName    string
	RegistrationNo      string
	PublicationDate     time.Time
	Dates               KeyDates
}

var invitationTmpl = template.Must(template.New("invitation").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02 January 2006") },
}).Parse(strings.TrimSpace(`
EXPRESSION OF INTEREST ({{.ReferenceNo}})

Invitation for Expression of Interest for the resolution of
{{.CorporateDebtorName}}, published on {{date .PublicationDate}} by
{{.ProfessionalName}} (Registration No. {{.RegistrationNo}}).

Last date for submission of EOI: {{date .Dates.SubmissionDeadline}}
Date of issue of provisional list: {{date .Dates.ProvisionalListDate}}
Last date for objections to provisional list: {{date .Dates.ObjectionWindowClose}}
Date of issue of final list: {{date .Dates.FinalListDate}}
`)))

// RenderInvitation produces the invitation text for publication and for the
// COC mailer.
func RenderInvitation(d InvitationData) (string, error) {
	var sb strings.Builder
	if err := invitationTmpl.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ValidateEmails checks a recipient list for the COC email dialog. It
// returns the per-address problems; an empty result means the list is
// sendable.
func ValidateEmails(addrs []string) []string {
	var problems []string
	if len(addrs) == 0 {
		return []string{"at least one recipient is required"}
	}
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			problems = append(problems, "empty email address")
			continue
		}
		if _, err := mail.ParseAddress(a); err != nil {
			problems = append(problems, fmt.Sprintf("invalid email address: %s", a))
		}
	}
	return problems
}
