package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Credential is a row of the auth table.
type Credential struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"` // Not exposed
	Role           string `json:"role"`
}

// PublicProfile is the part of a credential returned to clients after login.
type PublicProfile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
}

func (c *Credential) Profile() PublicProfile {
	return PublicProfile{Username: c.Username, Role: c.Role, UserID: c.UserID}
}

func IsKnownRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
