package models

// LoginRequest carries admin credentials for session issuance.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued session token. The token is also set as
// an HTTP cookie; the body copy exists for non-browser clients.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Name    string `json:"name"`
}

// SessionResponse describes the caller's current session.
type SessionResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}
