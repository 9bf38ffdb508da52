package auth

// Claims representa la información extraída del ID token.
type Claims struct {
	UserID string
	Email  string
}
