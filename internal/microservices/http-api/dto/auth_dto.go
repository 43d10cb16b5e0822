package dto

// Data Transfer Objects for authentication requests and responses

// EmailRequest: payload asking for a confirmation code
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// EmailResponse: the address the code was sent to and what to do next
type EmailResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// TokenRequest: payload exchanging a confirmation code (or password) for tokens
type TokenRequest struct {
	Email            string `json:"email" binding:"required"`
	ConformationCode string `json:"conformation_code"`
	Password         string `json:"password"`
}

// Secret returns the confirmation code, falling back to the password.
func (r TokenRequest) Secret() string {
	if r.ConformationCode != "" {
		return r.ConformationCode
	}
	return r.Password
}

// TokenResponse: response payload after successful authentication
type TokenResponse struct {
	Token     string `json:"token"`
	Refresh   string `json:"refresh,omitempty"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// RefreshTokenRequest: payload for refreshing or revoking a refresh token
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}
