package activity

import "context"

// Repository is the append-only activity log. Entries are never updated or
// deleted during an event.
type Repository interface {
	Append(ctx context.Context, item Entry) error
	List(ctx context.Context) ([]Entry, error)
}
