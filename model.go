package studiochat

// Model is a catalog entry from the gateway's /v1/models listing.
// Read-only data; the client never mutates it.
type Model struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Provider     string   `json:"provider,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Me is a snapshot of the current user as reported by the BFF.
type Me struct {
	UserID   string  `json:"user_id"`
	Role     string  `json:"role"`
	Email    string  `json:"email"`
	GitHubID *string `json:"github_id,omitempty"`
	Nickname string  `json:"nickname"`
}
