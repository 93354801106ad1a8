package auth

type requirementKind int

const (
	kindAnyone requirementKind = iota
	kindSameUser
	kindAdminOnly
	kindGroupMember
)

// Requirement is the authorization rule an endpoint demands of a session.
// The four constructors below are the only valid shapes.
type Requirement struct {
	kind     requirementKind
	username string
	members  []string
}

// Anyone accepts any completely-authenticated identity.
func Anyone() Requirement { return Requirement{kind: kindAnyone} }

// SameUser requires the session's username to equal username.
func SameUser(username string) Requirement {
	return Requirement{kind: kindSameUser, username: username}
}

// AdminOnly requires the Admin role.
func AdminOnly() Requirement { return Requirement{kind: kindAdminOnly} }

// GroupMember requires the session's email to be one of memberEmails.
// Matching is exact and case-sensitive; no normalization is applied.
func GroupMember(memberEmails []string) Requirement {
	return Requirement{kind: kindGroupMember, members: memberEmails}
}

// SatisfiedBy reports whether complete claims satisfy the requirement.
// Completeness is the verifier's precondition, not checked here.
func (r Requirement) SatisfiedBy(c Claims) bool {
	switch r.kind {
	case kindSameUser:
		return c.Username == r.username
	case kindAdminOnly:
		return c.Role == RoleAdmin
	case kindGroupMember:
		for _, m := range r.members {
			if c.Email == m {
				return true
			}
		}
		return false
	default:
		return true
	}
}
