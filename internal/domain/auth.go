package domain

// ============================================================
// Auth: request / response types
// ============================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
type LoginResponse struct {
	OK          bool        `json:"ok"`
	UserID      string      `json:"userId"`
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int         `json:"expiresIn"`
	User        *StoredUser `json:"user"`
}

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// RegisterResponse is the body for 200 from POST /v1/auth/register.
// Warning is set when the identity was created but the profile row was not.
type RegisterResponse struct {
	OK      bool   `json:"ok"`
	UserID  string `json:"userId"`
	Warning string `json:"warning,omitempty"`
}

// MeResponse is returned by GET /v1/auth/me. User is null when signed out.
type MeResponse struct {
	User *StoredUser `json:"user"`
}

// UpdateProfileRequest is the body for PUT /v1/auth/profile.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfileResponse wraps the updated user.
type UpdateProfileResponse struct {
	OK   bool        `json:"ok"`
	User *StoredUser `json:"user"`
}

// AuthSession is what an auth provider hands back after sign-in or sign-up.
type AuthSession struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresIn   int // seconds
}

// AuthIdentity is the subject of a verified access token.
type AuthIdentity struct {
	ID    string
	Email string
}
