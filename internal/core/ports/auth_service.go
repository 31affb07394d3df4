package ports

import "context"

// AuthService implements account signup, login and session inspection.
type AuthService interface {
	// Signup creates an account. Returns domain.ErrUserExists when the email
	// is already registered.
	Signup(ctx context.Context, email, password string) error
	// Login verifies the credentials and mints a session token. Returns
	// domain.ErrInvalidCredentials for an unknown email or a wrong password,
	// without distinguishing the two.
	Login(ctx context.Context, email, password string) (token string, err error)
	// WhoAmI returns the email embedded in a session token, or ok=false for a
	// missing, malformed, tampered or expired token. Absence of a valid
	// session is a normal state, never an error.
	WhoAmI(token string) (email string, ok bool)
}
