package ports

import "context"

// ListUsersResult is a page of customer accounts.
type ListUsersResult struct {
	Items      []UserView
	Pagination Pagination
}

// UserService covers profile reads/updates and the customer listing.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*UserView, error)
	// UpdateProfile changes the nickname. Callers are trusted to have
	// verified ownership at the transport layer.
	UpdateProfile(ctx context.Context, userID, nickname string) (*UserView, error)
	// ListUsers returns users holding the customer role only.
	ListUsers(ctx context.Context, page PageRequest) (*ListUsersResult, error)
}
