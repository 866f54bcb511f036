package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/metrics"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

const messagePageSize = 50

// MessageService implements the message lifecycle: send, scheduled send,
// remove, edit, pin and react, plus the paginated channel log view.
type MessageService struct {
	store *store.Store
	creds *credentials
	sched ports.Scheduler
	log   zerolog.Logger
}

func NewMessageService(st *store.Store, jwtSecret string, sched ports.Scheduler, log zerolog.Logger) *MessageService {
	return &MessageService{store: st, creds: newCredentials(jwtSecret), sched: sched, log: log}
}

// Send appends a message to the channel log and returns its id. Ids come from
// a process-wide counter shared by all channels.
func (s *MessageService) Send(ctx context.Context, credential string, channelID int, text string) (int, error) {
	if err := checkMessageLength(text); err != nil {
		return 0, err
	}
	var messageID int
	err := s.store.Update(func(st *store.State) error {
		user, err := s.requireMember(st, credential, channelID)
		if err != nil {
			return err
		}
		messageID = st.NextMessageID()
		st.Channels[channelID].Messages = append(st.Channels[channelID].Messages, &domain.Message{
			ID:          messageID,
			AuthorID:    user.ID,
			Text:        text,
			TimeCreated: time.Now().Unix(),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.MessagesSentTotal.WithLabelValues("send").Inc()
	return messageID, nil
}

// SendLater reserves the message id immediately and schedules the append for
// sendAt. Authorization is checked now, not at fire time; the reserved id is
// consumed even when the requested time turns out to be in the past.
func (s *MessageService) SendLater(ctx context.Context, credential string, channelID int, text string, sendAt time.Time) (int, error) {
	if err := checkMessageLength(text); err != nil {
		return 0, err
	}
	var (
		messageID int
		authorID  int
		delay     time.Duration
	)
	err := s.store.Update(func(st *store.State) error {
		if _, ok := st.ChannelByID(channelID); !ok {
			return domain.InvalidInputf("invalid channel id")
		}
		user, err := s.requireMember(st, credential, channelID)
		if err != nil {
			return err
		}
		messageID = st.NextMessageID()
		delay = time.Until(sendAt)
		if delay < 0 {
			return domain.InvalidInputf("time sent is a time in the past")
		}
		authorID = user.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.sched.Schedule("message.send_later", delay, func() {
		s.deliver(channelID, messageID, authorID, text, sendAt.Unix())
	})
	return messageID, nil
}

// deliver is the deferred half of SendLater. It runs through the store lock
// like any request; a channel deleted in the meantime drops the message.
func (s *MessageService) deliver(channelID, messageID, authorID int, text string, sentAt int64) {
	delivered := false
	_ = s.store.Update(func(st *store.State) error {
		ch, ok := st.ChannelByID(channelID)
		if !ok {
			return nil
		}
		ch.Messages = append(ch.Messages, &domain.Message{
			ID:          messageID,
			AuthorID:    authorID,
			Text:        text,
			TimeCreated: sentAt,
		})
		delivered = true
		return nil
	})

	if !delivered {
		metrics.DeferredTasksTotal.WithLabelValues("dropped").Inc()
		s.log.Warn().Int("channel_id", channelID).Int("message_id", messageID).
			Msg("scheduled message dropped, channel no longer exists")
		return
	}
	metrics.DeferredTasksTotal.WithLabelValues("delivered").Inc()
	metrics.MessagesSentTotal.WithLabelValues("send_later").Inc()
}

// Remove deletes a message. Only the author or a channel/global owner may.
func (s *MessageService) Remove(ctx context.Context, credential string, messageID int) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, msg, ok := st.FindMessage(messageID)
		if !ok {
			return domain.InvalidInputf("message does not exist")
		}
		if msg.AuthorID != user.ID && !canModerate(st, ch, user.ID) {
			return domain.Unauthorizedf("user does not have permission")
		}
		ch.DeleteMessage(messageID)
		return nil
	})
}

// Edit replaces a message's text under the same authorization as Remove.
// Empty text removes the message instead of storing it.
func (s *MessageService) Edit(ctx context.Context, credential string, messageID int, text string) error {
	if err := checkMessageLength(text); err != nil {
		return err
	}
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, msg, ok := st.FindMessage(messageID)
		if !ok {
			return domain.InvalidInputf("message does not exist")
		}
		if msg.AuthorID != user.ID && !canModerate(st, ch, user.ID) {
			return domain.Unauthorizedf("user does not have permission")
		}
		if text == "" {
			ch.DeleteMessage(messageID)
			return nil
		}
		msg.Text = text
		return nil
	})
}

// Pin marks a message as pinned. The already-pinned check comes before the
// membership and ownership checks, so pinning a pinned message is an input
// error even for non-members.
func (s *MessageService) Pin(ctx context.Context, credential string, messageID int) error {
	return s.setPinned(credential, messageID, true)
}

// Unpin clears the pinned flag under the same rules as Pin.
func (s *MessageService) Unpin(ctx context.Context, credential string, messageID int) error {
	return s.setPinned(credential, messageID, false)
}

func (s *MessageService) setPinned(credential string, messageID int, pinned bool) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, msg, ok := st.FindMessage(messageID)
		if !ok {
			return domain.InvalidInputf("message does not exist")
		}
		if msg.IsPinned == pinned {
			if pinned {
				return domain.InvalidInputf("message is already pinned")
			}
			return domain.InvalidInputf("message is already unpinned")
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("user is not a member of the channel")
		}
		if !canModerate(st, ch, user.ID) {
			return domain.Unauthorizedf("user is not an owner")
		}
		msg.IsPinned = pinned
		return nil
	})
}

// React records the caller's react on a message. Non-membership is an input
// error here, unlike pin.
func (s *MessageService) React(ctx context.Context, credential string, messageID, reactID int) error {
	return s.toggleReact(credential, messageID, reactID, true)
}

// Unreact removes the caller's react under the same rules as React.
func (s *MessageService) Unreact(ctx context.Context, credential string, messageID, reactID int) error {
	return s.toggleReact(credential, messageID, reactID, false)
}

func (s *MessageService) toggleReact(credential string, messageID, reactID int, add bool) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		if !domain.ValidReactID(reactID) {
			return domain.InvalidInputf("invalid react id")
		}
		ch, msg, ok := st.FindMessage(messageID)
		if !ok {
			return domain.InvalidInputf("message does not exist")
		}
		if !ch.IsMember(user.ID) {
			return domain.InvalidInputf("user is not a member of the channel")
		}
		if add {
			return msg.AddReact(reactID, user.ID)
		}
		return msg.RemoveReact(reactID, user.ID)
	})
}

// List returns up to 50 messages newest-first starting at offset start.
// End is -1 when the log was exhausted, otherwise start+50.
func (s *MessageService) List(ctx context.Context, credential string, channelID, start int) (*ports.MessagePage, error) {
	var page ports.MessagePage
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
			return domain.Unauthorizedf("you must be a member of the channel to view its messages")
		}

		total := len(ch.Messages)
		if start > total {
			return domain.InvalidInputf("start is greater than the total number of messages")
		}
		end := start + messagePageSize
		stop := start + messagePageSize
		if end > total {
			end = -1
			stop = total
		}

		views := make([]ports.MessageView, 0, stop-start)
		for i := start; i < stop; i++ {
			views = append(views, messageView(ch.Messages[total-1-i], user.ID))
		}
		page = ports.MessagePage{Messages: views, Start: start, End: end}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// requireMember resolves the credential and checks channel membership. An
// unknown channel has no members, so it fails the same way.
func (s *MessageService) requireMember(st *store.State, credential string, channelID int) (*domain.User, error) {
	user, err := s.creds.resolve(st, credential)
	if err != nil {
		return nil, err
	}
	ch, ok := st.ChannelByID(channelID)
	if !ok || !ch.IsMember(user.ID) {
		return nil, domain.Unauthorizedf("user is not a member of the channel")
	}
	return user, nil
}

// messageView builds the read model of a message for one requesting user.
func messageView(m *domain.Message, userID int) ports.MessageView {
	reacts := make([]ports.ReactView, 0, len(m.Reacts))
	for _, r := range m.Reacts {
		ids := make([]int, len(r.UserIDs))
		copy(ids, r.UserIDs)
		reacts = append(reacts, ports.ReactView{
			ReactID:           r.ReactID,
			UserIDs:           ids,
			IsThisUserReacted: m.ReactedBy(userID),
		})
	}
	return ports.MessageView{
		MessageID:   m.ID,
		AuthorID:    m.AuthorID,
		Text:        m.Text,
		TimeCreated: m.TimeCreated,
		Reacts:      reacts,
		IsPinned:    m.IsPinned,
	}
}
