package service

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// UserService implements profile reads/updates and global role changes.
type UserService struct {
	store *store.Store
	creds *credentials
	log   zerolog.Logger
}

func NewUserService(st *store.Store, jwtSecret string, log zerolog.Logger) *UserService {
	return &UserService{store: st, creds: newCredentials(jwtSecret), log: log}
}

// Profile returns the public record of any valid user id.
func (s *UserService) Profile(ctx context.Context, credential string, userID int) (*ports.UserSummary, error) {
	var summary ports.UserSummary
	err := s.store.View(func(st *store.State) error {
		if _, err := s.creds.resolve(st, credential); err != nil {
			return err
		}
		target, ok := st.UserByID(userID)
		if !ok {
			return domain.InvalidInputf("cannot find user with provided u_id")
		}
		summary = userSummary(target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetName updates the caller's display name under registration rules.
func (s *UserService) SetName(ctx context.Context, credential, nameFirst, nameLast string) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !validNameLen(nameFirst) {
			return domain.InvalidInputf("first name must be between 1 and %d characters", maxNameLen)
		}
		if !validNameLen(nameLast) {
			return domain.InvalidInputf("last name must be between 1 and %d characters", maxNameLen)
		}
		user.NameFirst = nameFirst
		user.NameLast = nameLast
		return nil
	})
}

// SetEmail updates the caller's email; format and uniqueness re-apply.
func (s *UserService) SetEmail(ctx context.Context, credential, email string) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !validEmail(email) {
			return domain.InvalidInputf("email is invalid")
		}
		if _, taken := st.UserByEmail(email); taken {
			return domain.InvalidInputf("email is already in use")
		}
		user.Email = email
		return nil
	})
}

// SetHandle updates the caller's handle; length bounds and uniqueness apply.
func (s *UserService) SetHandle(ctx context.Context, credential, handle string) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		n := utf8.RuneCountInString(handle)
		if n < minHandleLen || n > maxHandleLen {
			return domain.InvalidInputf("handle must be between %d and %d characters", minHandleLen, maxHandleLen)
		}
		if st.HandleTaken(handle) {
			return domain.InvalidInputf("handle is already in use")
		}
		user.Handle = handle
		return nil
	})
}

// ChangeGlobalRole changes a user's platform-wide role. Only a global Owner
// may act; user 1's role is immutable. Promotion to Owner also grants channel
// ownership in every channel the target already belongs to. Demotion leaves
// existing channel ownerships untouched.
func (s *UserService) ChangeGlobalRole(ctx context.Context, credential string, targetID int, role domain.Role) error {
	err := s.store.Update(func(st *store.State) error {
		if targetID == 1 {
			return domain.Unauthorizedf("cannot change permissions of the initial user")
		}
		if targetID < 1 || targetID > len(st.Users) {
			return domain.InvalidInputf("invalid user id")
		}
		if !role.Valid() {
			return domain.InvalidInputf("invalid permission id")
		}
		actor, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if actor.Role != domain.RoleOwner {
			return domain.Unauthorizedf("invalid user permissions")
		}

		st.Users[targetID].Role = role
		if role != domain.RoleOwner {
			return nil
		}
		for _, id := range st.ChannelIDs() {
			ch := st.Channels[id]
			if ch.IsMember(targetID) {
				ch.AddOwner(targetID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("u_id", targetID).Int("permission_id", int(role)).Msg("global role changed")
	return nil
}

func userSummary(u *domain.User) ports.UserSummary {
	return ports.UserSummary{
		UserID:    u.ID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Handle:    u.Handle,
	}
}
