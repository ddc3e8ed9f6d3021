package models

// AuthState holds remote credentials. A non-empty AccessToken is the only
// signal that remote sync is possible.
type AuthState struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Email       string `json:"email,omitempty"`
}

// Enabled reports whether the state carries a usable token.
func (a AuthState) Enabled() bool {
	return a.AccessToken != ""
}

// ParentInfo is the parent's identity block printed on generated documents.
// It is stored apart from the case snapshot.
type ParentInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
