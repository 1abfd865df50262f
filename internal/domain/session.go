package domain

// SessionResolveResponse is returned by POST /v1/session/resolve.
// Key and Strategy are empty when no session was found.
type SessionResolveResponse struct {
	User     *SessionUser `json:"user"`
	Key      string       `json:"key,omitempty"`
	Strategy string       `json:"strategy,omitempty"`
}
