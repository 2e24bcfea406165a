package model

// Session is what the credential store keeps between runs.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
