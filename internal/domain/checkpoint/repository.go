package checkpoint

import "context"

// Repository describes catalog reads needed by provisioning and verification.
type Repository interface {
	// ListCodes returns every checkpoint code except the given one
	// (the start/end sentinel is never part of the draw pool).
	ListCodes(ctx context.Context, excludeCode string) ([]string, error)
	GetHint(ctx context.Context, code string) (string, bool, error)
	Count(ctx context.Context) (int, error)
}
