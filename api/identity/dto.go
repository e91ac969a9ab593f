// Package identity provides the HTTP surface for registration and
// sign-in.
package identity

// AuthRequest carries registration and login credentials.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful sign-in.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Escapes  int    `json:"escapes"`
	Token    string `json:"token"`
}
