package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flockr/messaging-system/internal/core/domain"
)

func TestStandupStartAndActive(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	id := f.channel(t, alice.Token, "general")

	before, err := f.standups.Active(context.Background(), alice.Token, id)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if before.IsActive || before.TimeFinish != nil {
		t.Fatalf("no session should be active yet: %+v", before)
	}

	finish, err := f.standups.Start(context.Background(), alice.Token, id, 60)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	want := time.Now().Unix() + 60
	if finish < want-1 || finish > want+1 {
		t.Fatalf("finish time out of range: got %d want ~%d", finish, want)
	}

	during, err := f.standups.Active(context.Background(), alice.Token, id)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if !during.IsActive || during.TimeFinish == nil || *during.TimeFinish != finish {
		t.Fatalf("expected live session finishing at %d, got %+v", finish, during)
	}

	// One session per channel.
	if _, err := f.standups.Start(context.Background(), alice.Token, id, 60); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for second start, got %v", err)
	}
}

func TestStandup_MembersOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	bob := f.register(t, "bob@example.com", "Bob", "Jones")
	id := f.channel(t, alice.Token, "general")

	if _, err := f.standups.Start(context.Background(), bob.Token, id, 60); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized start, got %v", err)
	}
	if _, err := f.standups.Active(context.Background(), bob.Token, id); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized active, got %v", err)
	}
	if err := f.standups.Send(context.Background(), bob.Token, id, "hi"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized send, got %v", err)
	}
}

func TestStandupSend_Rejections(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	id := f.channel(t, alice.Token, "general")

	if err := f.standups.Send(context.Background(), alice.Token, id, "hello"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input without a session, got %v", err)
	}

	if _, err := f.standups.Start(context.Background(), alice.Token, id, 60); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.standups.Send(context.Background(), alice.Token, id, "/standup 10"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for command prefix, got %v", err)
	}
}

func TestStandupFlush_AggregatesLines(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	bob := f.register(t, "bob@example.com", "Bob", "Jones")
	id := f.channel(t, bob.Token, "general")
	_ = f.channels.Invite(context.Background(), bob.Token, id, alice.UserID)

	if _, err := f.standups.Start(context.Background(), bob.Token, id, 60); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = f.standups.Send(context.Background(), bob.Token, id, "shipped the fix")
	_ = f.standups.Send(context.Background(), alice.Token, id, "reviewing PRs")

	// Buffered lines are invisible until the flush.
	page, _ := f.messages.List(context.Background(), bob.Token, id, 0)
	if len(page.Messages) != 0 {
		t.Fatalf("buffered lines must not appear in the log")
	}

	f.sched.fire()

	page, _ = f.messages.List(context.Background(), bob.Token, id, 0)
	if len(page.Messages) != 1 {
		t.Fatalf("expected one aggregate message, got %d", len(page.Messages))
	}
	got := page.Messages[0]
	want := "BobJones : shipped the fix\nAliceSmith : reviewing PRs\n"
	if got.Text != want {
		t.Fatalf("unexpected aggregate:\ngot  %q\nwant %q", got.Text, want)
	}
	if got.AuthorID != bob.UserID {
		t.Fatalf("aggregate should be authored by the starter, got u_id %d", got.AuthorID)
	}

	// The session ended with the flush.
	status, _ := f.standups.Active(context.Background(), bob.Token, id)
	if status.IsActive {
		t.Fatalf("session should have ended")
	}
}

func TestStandupFlush_EmptySessionPostsNothing(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	id := f.channel(t, alice.Token, "general")

	if _, err := f.standups.Start(context.Background(), alice.Token, id, 60); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.sched.fire()

	page, _ := f.messages.List(context.Background(), alice.Token, id, 0)
	if len(page.Messages) != 0 {
		t.Fatalf("an empty session must not post a message")
	}
	status, _ := f.standups.Active(context.Background(), alice.Token, id)
	if status.IsActive {
		t.Fatalf("session should have ended")
	}
}

func TestStandupFlush_ChannelDeletedBeforeExpiry(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice", "Smith")
	id := f.channel(t, alice.Token, "doomed")

	if _, err := f.standups.Start(context.Background(), alice.Token, id, 60); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = f.standups.Send(context.Background(), alice.Token, id, "into the void")
	if err := f.channels.Leave(context.Background(), alice.Token, id); err != nil {
		t.Fatalf("leave: %v", err)
	}

	// Must not panic or resurrect the channel.
	f.sched.fire()

	all, _ := f.channels.ListAll(context.Background(), alice.Token)
	if len(all) != 0 {
		t.Fatalf("deleted channel should stay gone: %+v", all)
	}
}
