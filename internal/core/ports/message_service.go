package ports

import (
	"context"
	"time"
)

// ReactView is one react entry annotated for the requesting user.
type ReactView struct {
	ReactID           int
	UserIDs           []int
	IsThisUserReacted bool
}

// MessageView is the read model of a message.
type MessageView struct {
	MessageID   int
	AuthorID    int
	Text        string
	TimeCreated int64
	Reacts      []ReactView
	IsPinned    bool
}

// MessagePage is one 50-message window of a channel's log, newest first.
// End is -1 when the window exhausted the log, otherwise Start+50.
type MessagePage struct {
	Messages []MessageView
	Start    int
	End      int
}

// MessageService defines the message lifecycle operations.
type MessageService interface {
	// Send appends a message to the channel log and returns its id.
	Send(ctx context.Context, credential string, channelID int, text string) (int, error)
	// SendLater reserves an id now and schedules the append for sendAt.
	// The content becomes visible only once the deferred task executes.
	SendLater(ctx context.Context, credential string, channelID int, text string, sendAt time.Time) (int, error)
	// Remove deletes a message; author or channel/global owner only.
	Remove(ctx context.Context, credential string, messageID int) error
	// Edit replaces a message's text under the same authorization as
	// Remove. Empty text removes the message instead of storing it.
	Edit(ctx context.Context, credential string, messageID int, text string) error
	// Pin and Unpin toggle the pinned flag; channel members with channel
	// or global ownership only, and the flag must actually change.
	Pin(ctx context.Context, credential string, messageID int) error
	Unpin(ctx context.Context, credential string, messageID int) error
	// React and Unreact toggle the caller's react of the given kind.
	React(ctx context.Context, credential string, messageID, reactID int) error
	Unreact(ctx context.Context, credential string, messageID, reactID int) error
	// List returns up to 50 messages newest-first beginning at offset
	// start.
	List(ctx context.Context, credential string, channelID, start int) (*MessagePage, error)
}

// Scheduler defers a task to run once after the given delay. Implementations
// must not let a failing task take the process down; tasks mutate shared
// state through the store's lock and so serialize against request handling.
type Scheduler interface {
	Schedule(name string, delay time.Duration, task func())
}
