package route

import "context"

// Repository describes route persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Route) error
	GetByTeam(ctx context.Context, teamName string) (Route, bool, error)
}
