package ports

import "context"

// DirectoryService provides the cross-cutting read-only queries.
type DirectoryService interface {
	// UsersAll lists every registered user.
	UsersAll(ctx context.Context, credential string) ([]UserSummary, error)
	// Search scans every message in every channel the caller belongs to
	// and returns those containing query as an exact, case-sensitive
	// substring, annotated with the caller's reacted flag.
	Search(ctx context.Context, credential, query string) ([]MessageView, error)
}
