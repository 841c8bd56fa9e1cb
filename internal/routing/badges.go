package routing

// Badge is the fixed style vocabulary record statuses render with.
type Badge string

const (
	BadgeSuccess   Badge = "success"
	BadgeMuted     Badge = "muted"
	BadgeInfo      Badge = "info"
	BadgeWarning   Badge = "warning"
	BadgeSecondary Badge = "secondary"
)

var badgeByStatus = map[string]Badge{
	"Active":      BadgeSuccess,
	"Inactive":    BadgeMuted,
	"In Progress": BadgeInfo,
	"Review":      BadgeWarning,
	"Open":        BadgeSecondary,
	"Closed":      BadgeSuccess,
}

// BadgeFor maps a record status to its badge style. Unrecognized statuses
// fall back to the muted default rather than erroring.
func BadgeFor(status string) Badge {
	if b, ok := badgeByStatus[status]; ok {
		return b
	}
	return BadgeMuted
}
