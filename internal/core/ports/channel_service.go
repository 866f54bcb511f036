package ports

import "context"

// ChannelSummary identifies a channel in list responses.
type ChannelSummary struct {
	ChannelID int
	Name      string
}

// Member is the per-user view embedded in channel details.
type Member struct {
	UserID    int
	NameFirst string
	NameLast  string
}

// ChannelDetails is the full membership view of one channel.
type ChannelDetails struct {
	Name    string
	Owners  []Member
	Members []Member
}

// ChannelService defines channel membership and ownership operations.
type ChannelService interface {
	// Create makes a new channel with the caller as sole member and owner.
	Create(ctx context.Context, credential, name string, isPublic bool) (int, error)
	// Invite adds the target user immediately; a member may invite anyone
	// not already in the channel.
	Invite(ctx context.Context, credential string, channelID, targetID int) error
	// Join adds the caller to a public channel. Private channels deny join.
	Join(ctx context.Context, credential string, channelID int) error
	// Leave removes the caller. If the caller is the sole owner the entire
	// channel is deleted.
	Leave(ctx context.Context, credential string, channelID int) error
	// AddOwner promotes the target within the channel, adding membership
	// if needed. Caller must be a channel owner.
	AddOwner(ctx context.Context, credential string, channelID, targetID int) error
	// RemoveOwner demotes the target within the channel. Global Owners
	// cannot be demoted through this path.
	RemoveOwner(ctx context.Context, credential string, channelID, targetID int) error
	// Details returns name and membership; members only.
	Details(ctx context.Context, credential string, channelID int) (*ChannelDetails, error)
	// ListMine returns channels the caller belongs to.
	ListMine(ctx context.Context, credential string) ([]ChannelSummary, error)
	// ListAll returns every channel regardless of membership.
	ListAll(ctx context.Context, credential string) ([]ChannelSummary, error)
}
