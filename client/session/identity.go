package session

import "encoding/json"

// Role is the single role value carried by an authenticated identity.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether the role is one of the two enumerated values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Identity is the authenticated principal's profile as issued by the auth
// gateway. An absent identity means the session is anonymous.
type Identity struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

// Patch is a partial identity update applied after a profile edit. Nil fields
// are left unchanged; the role is not client-mutable.
type Patch struct {
	Email      *string
	FullName   *string
	EmployeeID *int64
}

func encodeIdentity(id Identity) string {
	raw, err := json.Marshal(id)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeIdentity(raw string) (Identity, bool) {
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, false
	}
	if !id.Role.Valid() {
		return Identity{}, false
	}
	return id, true
}
