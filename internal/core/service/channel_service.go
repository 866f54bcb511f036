package service

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/metrics"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// ChannelService implements channel creation, membership and ownership.
type ChannelService struct {
	store *store.Store
	creds *credentials
	log   zerolog.Logger
}

func NewChannelService(st *store.Store, jwtSecret string, log zerolog.Logger) *ChannelService {
	return &ChannelService{store: st, creds: newCredentials(jwtSecret), log: log}
}

// Create makes a new channel with the caller as sole member and owner.
func (s *ChannelService) Create(ctx context.Context, credential, name string, isPublic bool) (int, error) {
	var channelID int
	err := s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if utf8.RuneCountInString(name) > maxChannelNameLen {
			return domain.InvalidInputf("name is more than %d characters long", maxChannelNameLen)
		}

		channelID = st.NextChannelID
		st.NextChannelID++
		st.Channels[channelID] = &domain.Channel{
			ID:       channelID,
			Name:     name,
			IsPublic: isPublic,
			Owners:   []int{user.ID},
			Members:  []int{user.ID},
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.ChannelsCreatedTotal.Inc()
	s.log.Info().Int("channel_id", channelID).Str("name", name).Bool("is_public", isPublic).Msg("channel created")
	return channelID, nil
}

// Invite adds the target user to the channel immediately. A global Owner
// joins the owner set as well.
func (s *ChannelService) Invite(ctx context.Context, credential string, channelID, targetID int) error {
	return s.store.Update(func(st *store.State) error {
		target, err := findUser(st, targetID)
		if err != nil {
			return err
		}
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		actor, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !ch.IsMember(actor.ID) {
			return domain.Unauthorizedf("you must be a member of the channel to invite")
		}
		if ch.IsMember(targetID) {
			return domain.InvalidInputf("user is already a member of the channel")
		}

		ch.AddMember(targetID)
		if target.Role == domain.RoleOwner {
			ch.AddOwner(targetID)
		}
		return nil
	})
}

// Join adds the caller to a public channel. Joining a private channel is
// always denied.
func (s *ChannelService) Join(ctx context.Context, credential string, channelID int) error {
	return s.store.Update(func(st *store.State) error {
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		if !ch.IsPublic {
			return domain.Unauthorizedf("this channel is private")
		}
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}

		ch.AddMember(user.ID)
		if user.Role == domain.RoleOwner {
			ch.AddOwner(user.ID)
		}
		return nil
	})
}

// Leave removes the caller from the channel. When the caller is the sole
// owner the entire channel is deleted.
func (s *ChannelService) Leave(ctx context.Context, credential string, channelID int) error {
	var deleted bool
	err := s.store.Update(func(st *store.State) error {
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("user is not a member of this channel")
		}

		if ch.IsOwner(user.ID) && len(ch.Owners) == 1 {
			delete(st.Channels, channelID)
			deleted = true
			return nil
		}
		ch.RemoveOwner(user.ID)
		ch.RemoveMember(user.ID)
		return nil
	})
	if err != nil {
		return err
	}

	if deleted {
		s.log.Info().Int("channel_id", channelID).Msg("last owner left, channel deleted")
	}
	return nil
}

// AddOwner promotes the target within the channel; callers must themselves be
// channel owners. Targets outside the channel become members as well.
func (s *ChannelService) AddOwner(ctx context.Context, credential string, channelID, targetID int) error {
	return s.store.Update(func(st *store.State) error {
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		actor, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !ch.IsOwner(actor.ID) {
			return domain.Unauthorizedf("user does not have owner access")
		}
		if ch.IsOwner(targetID) {
			return domain.InvalidInputf("user is already an owner")
		}
		if _, err := findUser(st, targetID); err != nil {
			return err
		}

		ch.AddOwner(targetID)
		return nil
	})
}

// RemoveOwner demotes the target within the channel; the target stays a
// member. Global Owners cannot be demoted through this path.
func (s *ChannelService) RemoveOwner(ctx context.Context, credential string, channelID, targetID int) error {
	return s.store.Update(func(st *store.State) error {
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		target, err := findUser(st, targetID)
		if err != nil {
			return err
		}
		if target.Role == domain.RoleOwner {
			return domain.Unauthorizedf("cannot remove a global owner")
		}
		actor, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !ch.IsOwner(actor.ID) {
			return domain.Unauthorizedf("user does not have owner access")
		}
		if !ch.IsOwner(targetID) {
			return domain.InvalidInputf("user is not an owner")
		}

		ch.RemoveOwner(targetID)
		return nil
	})
}

// Details returns the channel's name and membership; members only.
func (s *ChannelService) Details(ctx context.Context, credential string, channelID int) (*ports.ChannelDetails, error) {
	var details ports.ChannelDetails
	err := s.store.View(func(st *store.State) error {
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("you must be a member of the channel to view its details")
		}

		details = ports.ChannelDetails{
			Name:    ch.Name,
			Owners:  memberViews(st, ch.Owners),
			Members: memberViews(st, ch.Members),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// ListMine returns summaries of the channels the caller belongs to.
func (s *ChannelService) ListMine(ctx context.Context, credential string) ([]ports.ChannelSummary, error) {
	return s.list(credential, true)
}

// ListAll returns summaries of every channel, membership irrelevant.
func (s *ChannelService) ListAll(ctx context.Context, credential string) ([]ports.ChannelSummary, error) {
	return s.list(credential, false)
}

func (s *ChannelService) list(credential string, mineOnly bool) ([]ports.ChannelSummary, error) {
	summaries := []ports.ChannelSummary{}
	err := s.store.View(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		for _, id := range st.ChannelIDs() {
			ch := st.Channels[id]
			if mineOnly && !ch.IsMember(user.ID) {
				continue
			}
			summaries = append(summaries, ports.ChannelSummary{ChannelID: ch.ID, Name: ch.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func memberViews(st *store.State, ids []int) []ports.Member {
	views := make([]ports.Member, 0, len(ids))
	for _, id := range ids {
		u, ok := st.UserByID(id)
		if !ok {
			continue
		}
		views = append(views, ports.Member{UserID: u.ID, NameFirst: u.NameFirst, NameLast: u.NameLast})
	}
	return views
}
