package domain

import "strings"

// EmailSuffix is the only mail domain accepted for accounts and submitters.
const EmailSuffix = "@gmail.com"

// Role enumerates account roles. Values are the labels persisted in users.csv.
type Role string

const (
	RoleIntern   Role = "Developer Intern"
	RoleTechLead Role = "Tech Lead"
)

// ParseRole accepts both the persisted labels and the short API names.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "intern", "developerintern":
		return RoleIntern, true
	case "techlead":
		return RoleTechLead, true
	}
	return "", false
}

// Account is a registered user. Never updated or deleted once created.
type Account struct {
	Email    string
	Password string
	Role     Role
}

// ValidEmail reports whether email ends with the accepted mail domain after trimming.
func ValidEmail(email string) bool {
	return strings.HasSuffix(strings.TrimSpace(email), EmailSuffix)
}
