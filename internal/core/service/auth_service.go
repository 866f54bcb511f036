package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// AuthService implements registration, login/logout and password reset.
type AuthService struct {
	store  *store.Store
	creds  *credentials
	mailer ports.ResetMailer
	log    zerolog.Logger
}

func NewAuthService(st *store.Store, jwtSecret string, mailer ports.ResetMailer, log zerolog.Logger) *AuthService {
	return &AuthService{store: st, creds: newCredentials(jwtSecret), mailer: mailer, log: log}
}

// Register creates a user and issues their first credential.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var res ports.AuthResult
	var handle string

	err := s.store.Update(func(st *store.State) error {
		if !validEmail(in.Email) {
			return domain.InvalidInputf("invalid email")
		}
		if _, taken := st.UserByEmail(in.Email); taken {
			return domain.InvalidInputf("email already taken")
		}
		if utf8.RuneCountInString(in.Password) < minPasswordLen {
			return domain.InvalidInputf("password too short")
		}
		if !validNameLen(in.NameFirst) {
			return domain.InvalidInputf("first name must be between 1 and %d characters", maxNameLen)
		}
		if !validNameLen(in.NameLast) {
			return domain.InvalidInputf("last name must be between 1 and %d characters", maxNameLen)
		}

		handle = dedupHandle(st, truncateRunes(in.NameFirst+in.NameLast, maxHandleLen))

		user := &domain.User{
			ID:        len(st.Users) + 1,
			Email:     in.Email,
			NameFirst: in.NameFirst,
			NameLast:  in.NameLast,
			Handle:    handle,
			Password:  in.Password,
			Role:      domain.RoleMember,
		}
		// The first registered user is the platform owner, permanently.
		if user.ID == 1 {
			user.Role = domain.RoleOwner
		}
		st.Users[user.ID] = user

		token, err := s.creds.issue(st, user.ID)
		if err != nil {
			return err
		}
		res = ports.AuthResult{UserID: user.ID, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("u_id", res.UserID).Str("handle", handle).Msg("user registered")
	return &res, nil
}

// Login issues a fresh credential. An unknown email and a wrong password are
// both reported as input errors, not as unauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var res ports.AuthResult
	err := s.store.Update(func(st *store.State) error {
		user, ok := st.UserByEmail(email)
		if !ok {
			return domain.InvalidInputf("email not registered")
		}
		if user.Password != password {
			return domain.InvalidInputf("incorrect password")
		}
		token, err := s.creds.issue(st, user.ID)
		if err != nil {
			return err
		}
		res = ports.AuthResult{UserID: user.ID, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("u_id", res.UserID).Msg("user logged in")
	return &res, nil
}

// Logout revokes the credential and reports whether it was live.
func (s *AuthService) Logout(ctx context.Context, credential string) (bool, error) {
	var ok bool
	err := s.store.Update(func(st *store.State) error {
		ok = s.creds.revoke(st, credential)
		return nil
	})
	return ok, err
}

const (
	resetCodeLen      = 20
	resetCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RequestPasswordReset issues a single-use reset code and hands it to the
// mailer. Unknown emails succeed silently so the endpoint does not leak which
// addresses are registered. Delivery failures are logged, not surfaced; the
// mailer is a notification sink, not part of the operation's outcome.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	var code string
	err := s.store.Update(func(st *store.State) error {
		if _, ok := st.UserByEmail(email); !ok {
			return nil
		}
		code = generateResetCode()
		for _, dup := st.ResetCodes[code]; dup; _, dup = st.ResetCodes[code] {
			code = generateResetCode()
		}
		// At most one live code per email: a new request invalidates the
		// previous unused code.
		for c, e := range st.ResetCodes {
			if e == email {
				delete(st.ResetCodes, c)
			}
		}
		st.ResetCodes[code] = email
		return nil
	})
	if err != nil || code == "" {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, email, code); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("reset code delivery failed")
	}
	return nil
}

// ResetPassword consumes a reset code and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	return s.store.Update(func(st *store.State) error {
		email, ok := st.ResetCodes[code]
		if !ok {
			return domain.InvalidInputf("invalid reset code")
		}
		if utf8.RuneCountInString(newPassword) < minPasswordLen {
			return domain.InvalidInputf("new password too short")
		}
		delete(st.ResetCodes, code)
		if user, ok := st.UserByEmail(email); ok {
			user.Password = newPassword
		}
		return nil
	})
}

// dedupHandle applies the documented collision policy: while the candidate is
// taken, replace its last character (last two once the counter reaches 10)
// with the counter value, re-scanning until a full pass finds no collision.
// The truncation arithmetic is not collision-free once the counter needs
// three digits; that pathological edge is preserved, not fixed.
func dedupHandle(st *store.State, handle string) string {
	i := 1
	for {
		initial := i
		for _, id := range st.UserIDs() {
			if st.Users[id].Handle != handle {
				continue
			}
			keep := 19
			if i >= 10 {
				keep = 18
			}
			handle = truncateRunes(handle, keep) + strconv.Itoa(i)
			i++
		}
		if initial == i {
			return handle
		}
	}
}

// generateResetCode returns a 20-character alphanumeric code.
func generateResetCode() string {
	b := make([]byte, resetCodeLen)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%020d", time.Now().UnixNano())
	}
	for i, v := range b {
		b[i] = resetCodeAlphabet[int(v)%len(resetCodeAlphabet)]
	}
	return string(b)
}
