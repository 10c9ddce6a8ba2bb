package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate reports whether both fields are present. A login with a missing
// field is treated as a failed login, not as a malformed request.
func (d LoginDTO) Validate() bool {
	return d.Username != "" && d.Password != ""
}

type LoginResponse struct {
	Message string `json:"message"`
}

const LoginSuccessMessage = "Login successful"
