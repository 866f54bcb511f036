package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/metrics"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// standupCommandPrefix guards against a buffered line re-triggering a session
// when the aggregate is posted back into the channel.
const standupCommandPrefix = "/standup"

// StandupService manages the single time-boxed aggregation session a channel
// may hold. Lines buffered during the session surface as one synthesized
// message, posted on behalf of the starter when the timer fires.
type StandupService struct {
	store *store.Store
	creds *credentials
	sched ports.Scheduler
	log   zerolog.Logger
}

func NewStandupService(st *store.Store, jwtSecret string, sched ports.Scheduler, log zerolog.Logger) *StandupService {
	return &StandupService{store: st, creds: newCredentials(jwtSecret), sched: sched, log: log}
}

// Start opens a session lasting length seconds and returns its finish time.
// A channel holds at most one live session.
func (s *StandupService) Start(ctx context.Context, credential string, channelID, length int) (int64, error) {
	var finish int64
	err := s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("this user is not a member of this channel")
		}
		if ch.Standup != nil {
			return domain.InvalidInputf("active standup already in session")
		}

		finish = time.Now().Unix() + int64(length)
		ch.Standup = &domain.StandupSession{Finish: finish, StarterID: user.ID}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.sched.Schedule("standup.flush", time.Duration(length)*time.Second, func() {
		s.flush(channelID)
	})
	metrics.StandupsStartedTotal.Inc()
	s.log.Info().Int("channel_id", channelID).Int("length", length).Msg("standup started")
	return finish, nil
}

// Active reports whether the channel has a live session and when it ends.
func (s *StandupService) Active(ctx context.Context, credential string, channelID int) (*ports.StandupStatus, error) {
	var status ports.StandupStatus
	err := s.store.View(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("this user is not a member of this channel")
		}

		if ch.Standup != nil {
			finish := ch.Standup.Finish
			status = ports.StandupStatus{IsActive: true, TimeFinish: &finish}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Send buffers one line, tagged with the caller's handle, into the active
// session. Nothing is visible in the channel until the flush.
func (s *StandupService) Send(ctx context.Context, credential string, channelID int, line string) error {
	return s.store.Update(func(st *store.State) error {
		user, err := s.creds.resolve(st, credential)
		if err != nil {
			return err
		}
		ch, err := findChannel(st, channelID)
		if err != nil {
			return err
		}
		if !ch.IsMember(user.ID) {
			return domain.Unauthorizedf("this user is not a member of this channel")
		}
		if ch.Standup == nil {
			return domain.InvalidInputf("no active standup session")
		}
		if strings.HasPrefix(line, standupCommandPrefix) {
			return domain.InvalidInputf("line cannot start with a standup command")
		}
		if err := checkMessageLength(line); err != nil {
			return err
		}

		ch.Standup.Entries = append(ch.Standup.Entries, domain.StandupEntry{Handle: user.Handle, Line: line})
		return nil
	})
}

// flush is the deferred half of Start. It aggregates the buffered lines into
// one message authored by the starter. A channel deleted before expiry, or a
// session with no buffered lines, drops silently.
func (s *StandupService) flush(channelID int) {
	posted := false
	_ = s.store.Update(func(st *store.State) error {
		ch, ok := st.ChannelByID(channelID)
		if !ok || ch.Standup == nil {
			return nil
		}
		sess := ch.Standup
		ch.Standup = nil

		blob := sess.Aggregate()
		if blob == "" {
			return nil
		}
		ch.Messages = append(ch.Messages, &domain.Message{
			ID:          st.NextMessageID(),
			AuthorID:    sess.StarterID,
			Text:        blob,
			TimeCreated: time.Now().Unix(),
		})
		posted = true
		return nil
	})

	if !posted {
		metrics.DeferredTasksTotal.WithLabelValues("dropped").Inc()
		s.log.Warn().Int("channel_id", channelID).Msg("standup flush dropped, channel gone or nothing buffered")
		return
	}
	metrics.DeferredTasksTotal.WithLabelValues("delivered").Inc()
	metrics.MessagesSentTotal.WithLabelValues("standup_flush").Inc()
	s.log.Info().Int("channel_id", channelID).Msg("standup flushed")
}
