package team

import (
	"context"
	"errors"
)

// ErrNameTaken reports a registry insert against an existing display name.
var ErrNameTaken = errors.New("team name already registered")

// Repository describes registry persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Team) error
	GetByName(ctx context.Context, name string) (Team, bool, error)
	ExistsByID(ctx context.Context, teamID string) (bool, error)
}
