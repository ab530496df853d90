package progress

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTransition reports an attempt to confirm slots out of order.
	ErrTransition = errors.New("invalid progress transition")
	// ErrSlotTaken reports a conditional slot write that lost a race: the
	// slot was already confirmed by the time the update committed.
	ErrSlotTaken = errors.New("slot already confirmed")
)

// Repository describes progress persistence. Mutations are conditional
// writes keyed by team so concurrent scans cannot lose updates.
type Repository interface {
	Create(ctx context.Context, item Progress) error
	GetByTeam(ctx context.Context, teamName string) (Progress, bool, error)
	// FindByIdentifier resolves a team by generated identifier or display
	// name, identifier first.
	FindByIdentifier(ctx context.Context, identifier string) (Progress, bool, error)
	List(ctx context.Context) ([]Progress, error)

	// ClaimDeviceLock atomically binds the team to the device when, and only
	// when, no lock exists yet. It always returns the committed lock, whether
	// this call won the claim or an earlier one did.
	ClaimDeviceLock(ctx context.Context, teamName, deviceID, memberName string) (lockedDevice, lockedMember string, err error)

	// ConfirmSlot conditionally fills an empty slot; a lost race surfaces as
	// ErrSlotTaken so the caller can re-read committed state.
	ConfirmSlot(ctx context.Context, teamName string, slot Slot, code string, at time.Time) error

	SetRestricted(ctx context.Context, teamName string, restricted bool) error
}
