package ports

import (
	"context"

	"github.com/flockr/messaging-system/internal/core/domain"
)

// UserSummary is the public view of a user record.
type UserSummary struct {
	UserID    int
	Email     string
	NameFirst string
	NameLast  string
	Handle    string
}

// UserService defines profile and global-role operations.
type UserService interface {
	// Profile returns any user's public record.
	Profile(ctx context.Context, credential string, userID int) (*UserSummary, error)
	// SetName, SetEmail and SetHandle re-validate the field under the
	// same rules as registration before applying it.
	SetName(ctx context.Context, credential, nameFirst, nameLast string) error
	SetEmail(ctx context.Context, credential, email string) error
	SetHandle(ctx context.Context, credential, handle string) error
	// ChangeGlobalRole promotes or demotes a user platform-wide. Only a
	// global Owner may call it; user 1's role is immutable. Promotion to
	// Owner also grants channel ownership in every channel the target
	// already belongs to; demotion does not retract channel ownerships.
	ChangeGlobalRole(ctx context.Context, credential string, targetID int, role domain.Role) error
}
