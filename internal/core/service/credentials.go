package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// credentialClaims binds a signed credential to exactly one user identity.
type credentialClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"u_id"`
}

// credentials is the credential store: it mints opaque session tokens and
// tracks the currently-live set inside the shared state. A token's validity
// is membership in that set, not cryptographic soundness — logout removes it,
// and anything not tracked is access-denied.
type credentials struct {
	secret []byte
}

func newCredentials(secret string) *credentials {
	return &credentials{secret: []byte(secret)}
}

// issue mints a fresh credential for userID and records it as live. Prior
// credentials stay valid; a user may hold several live sessions at once.
func (c *credentials) issue(st *store.State, userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, credentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	st.Tokens[signed] = userID
	return signed, nil
}

// revoke removes the credential from the live set and reports whether it was
// live. Revoking a dead credential is a no-op, not an error.
func (c *credentials) revoke(st *store.State, credential string) bool {
	if _, ok := st.Tokens[credential]; !ok {
		return false
	}
	delete(st.Tokens, credential)
	return true
}

// resolve maps a live credential to its user record.
func (c *credentials) resolve(st *store.State, credential string) (*domain.User, error) {
	userID, ok := st.Tokens[credential]
	if !ok {
		return nil, domain.Unauthorizedf("invalid token")
	}
	user, ok := st.UserByID(userID)
	if !ok {
		return nil, domain.Unauthorizedf("invalid token")
	}
	return user, nil
}
