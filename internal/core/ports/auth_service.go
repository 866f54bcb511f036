package ports

import "context"

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Email     string
	Password  string
	NameFirst string
	NameLast  string
}

// AuthResult is returned by register and login: the user's identity and a
// freshly issued live credential.
type AuthResult struct {
	UserID int
	Token  string
}

// AuthService defines account lifecycle operations.
type AuthService interface {
	// Register validates the input, assigns the next sequential user id,
	// derives a unique handle, and issues a credential. The first
	// registered user becomes the global Owner.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// Login issues a fresh credential without revoking prior ones. An
	// unknown email and a wrong password are both input errors.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout revokes the credential if live and reports whether it was.
	// Revoking a dead credential is not an error.
	Logout(ctx context.Context, credential string) (bool, error)
	// RequestPasswordReset issues a single-use reset code and hands it to
	// the mailer. Unknown emails succeed silently.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword consumes a reset code and replaces the password.
	ResetPassword(ctx context.Context, code, newPassword string) error
}

// ResetMailer is the delivery sink for password-reset codes. The core only
// calls into it; delivery mechanics are a replaceable collaborator.
type ResetMailer interface {
	SendResetCode(ctx context.Context, email, code string) error
}
