package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// DirectoryService implements the cross-cutting read-only queries: the user
// directory and full-text search across the caller's channels.
type DirectoryService struct {
	store *store.Store
	creds *credentials
	log   zerolog.Logger
}

func NewDirectoryService(st *store.Store, jwtSecret string, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{store: st, creds: newCredentials(jwtSecret), log: log}
}

// UsersAll lists every registered user in registration order.
func (s *DirectoryService) UsersAll(ctx context.Context, credential string) ([]ports.UserSummary, error) {
	users := []ports.UserSummary{}
	err := s.store.View(func(st *store.State) error {
		if _, err := s.creds.resolve(st, credential); err != nil {
			return err
		}
		for _, id := range st.UserIDs() {
			users = append(users, userSummary(st.Users[id]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Search scans every message in every channel the caller belongs to and
// returns those containing query as an exact, case-sensitive substring.
// Results carry the caller's reacted flag and follow channel order, oldest
// message first within each channel.
func (s *DirectoryService) Search(ctx context.Context, credential, query string) ([]ports.MessageView, error) {
	matches := []ports.MessageView{}
	err := s.store.View(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		for _, id := range st.ChannelIDs() {
			ch := st.Channels[id]
			if !ch.IsMember(user.ID) {
				continue
			}
			for _, m := range ch.Messages {
				if strings.Contains(m.Text, query) {
					matches = append(matches, messageView(m, user.ID))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
