package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

const testSecret = "test-secret"

// fakeScheduler records armed tasks instead of starting timers, so tests can
// fire deferred work deterministically.
type fakeScheduler struct {
	tasks []scheduledTask
}

type scheduledTask struct {
	name  string
	delay time.Duration
	run   func()
}

func (s *fakeScheduler) Schedule(name string, delay time.Duration, task func()) {
	s.tasks = append(s.tasks, scheduledTask{name: name, delay: delay, run: task})
}

// fire runs every armed task in order and clears the queue.
func (s *fakeScheduler) fire() {
	tasks := s.tasks
	s.tasks = nil
	for _, t := range tasks {
		t.run()
	}
}

// fakeMailer captures reset codes instead of delivering them.
type fakeMailer struct {
	emails []string
	codes  []string
}

func (m *fakeMailer) SendResetCode(ctx context.Context, email, code string) error {
	m.emails = append(m.emails, email)
	m.codes = append(m.codes, code)
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.codes) == 0 {
		t.Fatal("no reset code was delivered")
	}
	return m.codes[len(m.codes)-1]
}

// fixture bundles every service over one shared store.
type fixture struct {
	store     *store.Store
	sched     *fakeScheduler
	mailer    *fakeMailer
	auth      *AuthService
	users     *UserService
	channels  *ChannelService
	messages  *MessageService
	standups  *StandupService
	directory *DirectoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New()
	sched := &fakeScheduler{}
	mailer := &fakeMailer{}
	log := zerolog.Nop()
	return &fixture{
		store:     st,
		sched:     sched,
		mailer:    mailer,
		auth:      NewAuthService(st, testSecret, mailer, log),
		users:     NewUserService(st, testSecret, log),
		channels:  NewChannelService(st, testSecret, log),
		messages:  NewMessageService(st, testSecret, sched, log),
		standups:  NewStandupService(st, testSecret, sched, log),
		directory: NewDirectoryService(st, testSecret, log),
	}
}

// register creates an account with a valid password and fails the test on
// error. The first call per fixture creates the platform owner.
func (f *fixture) register(t *testing.T, email, first, last string) *ports.AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Email:     email,
		Password:  "password123",
		NameFirst: first,
		NameLast:  last,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res
}

// channel creates a public channel and fails the test on error.
func (f *fixture) channel(t *testing.T, credential, name string) int {
	t.Helper()
	id, err := f.channels.Create(context.Background(), credential, name, true)
	if err != nil {
		t.Fatalf("create channel %s: %v", name, err)
	}
	return id
}
