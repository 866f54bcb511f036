package ports

import "context"

// StandupStatus reports whether a channel has a live session and when it
// finishes. TimeFinish is nil when no session is active.
type StandupStatus struct {
	IsActive   bool
	TimeFinish *int64
}

// StandupService manages the one deferred aggregation session a channel may
// hold at a time.
type StandupService interface {
	// Start opens a session lasting length seconds and returns the finish
	// timestamp. At expiry the buffered lines are flushed as one message
	// posted on behalf of the starter.
	Start(ctx context.Context, credential string, channelID, length int) (int64, error)
	// Active reports the channel's current session state.
	Active(ctx context.Context, credential string, channelID int) (*StandupStatus, error)
	// Send buffers one line into the active session. Nothing becomes
	// visible in the channel until the flush.
	Send(ctx context.Context, credential string, channelID int, line string) error
}
