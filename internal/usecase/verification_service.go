package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/activity"
	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/domain/route"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

// CompletionHint is returned after the final intermediate checkpoint, and is
// also the fallback when a catalog hint row is missing mid-route. Teams know
// it as the "head to the finish" phrase.
const CompletionHint = "Congo"

// DefaultMemberName stands in when a scan does not identify the member
// holding the device.
const DefaultMemberName = "Unknown"

type ScanInput struct {
	QRData     string
	TeamName   string
	DeviceID   string
	MemberName string
}

type VerifyResult struct {
	Correct  bool
	NextHint string
	Message  string
}

// VerificationService decides whether a scanned code is the team's next
// checkpoint, claims device custody on first contact, and advances the
// team's progress one slot at a time.
type VerificationService struct {
	routeRepo    route.Repository
	progressRepo progress.Repository
	catalog      checkpoint.Repository
	activityRepo activity.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewVerificationService(
	routeRepo route.Repository,
	progressRepo progress.Repository,
	catalog checkpoint.Repository,
	activityRepo activity.Repository,
	eventLocation *time.Location,
	logger *logging.Logger,
) *VerificationService {
	if eventLocation == nil {
		eventLocation = time.UTC
	}
	return &VerificationService{
		routeRepo:    routeRepo,
		progressRepo: progressRepo,
		catalog:      catalog,
		activityRepo: activityRepo,
		logger:       logger,
		now: func() time.Time {
			return time.Now().In(eventLocation)
		},
	}
}

// Verify checks a scan against the team's route. A wrong code is a normal
// outcome, not an error: it comes back as Correct=false with a message.
// Errors are reserved for custody violations, unknown teams, and storage
// failures.
func (s *VerificationService) Verify(ctx context.Context, in ScanInput) (VerifyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.VerificationService.Verify")
	defer span.End()

	in.TeamName = strings.TrimSpace(in.TeamName)
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	in.MemberName = strings.TrimSpace(in.MemberName)

	if in.TeamName == "" {
		return VerifyResult{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if in.DeviceID == "" {
		return VerifyResult{}, ErrMissingDevice
	}

	// A concurrent scan can win the slot between our read and our write;
	// one re-read covers that without looping forever.
	const slotRaceRetries = 1
	return s.verify(ctx, in, slotRaceRetries)
}

func (s *VerificationService) verify(ctx context.Context, in ScanInput, retries int) (VerifyResult, error) {
	rt, found, err := s.routeRepo.GetByTeam(ctx, in.TeamName)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("get route: %w", err)
	}
	if !found {
		return VerifyResult{}, fmt.Errorf("%w: team=%s", ErrUnknownTeam, in.TeamName)
	}

	pr, found, err := s.progressRepo.GetByTeam(ctx, in.TeamName)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("get progress: %w", err)
	}
	if !found {
		return VerifyResult{}, fmt.Errorf("%w: team=%s", ErrInconsistentState, in.TeamName)
	}

	if pr.Restricted {
		return VerifyResult{}, ErrTeamDisqualified
	}

	if err := s.enforceDeviceLock(ctx, &pr, in); err != nil {
		return VerifyResult{}, err
	}

	next, open := pr.NextSlot()
	if !open {
		return VerifyResult{}, ErrAllCheckpointsVisited
	}

	expected := routeCode(rt, next)
	if checkpoint.Normalize(in.QRData) != checkpoint.Normalize(expected) {
		if next == progress.SlotStart {
			return VerifyResult{Correct: false, Message: "Incorrect start location"}, nil
		}
		return VerifyResult{Correct: false, Message: "Wrong location"}, nil
	}

	at := s.now()

	if next == progress.SlotStart {
		return s.confirmStart(ctx, in, rt, at, retries)
	}
	return s.confirmIntermediate(ctx, in, rt, next, at, retries)
}

// enforceDeviceLock claims custody on the first scan and rejects any other
// device afterwards. The claim is a conditional write; a losing racer sees
// the committed lock, not its own.
func (s *VerificationService) enforceDeviceLock(ctx context.Context, pr *progress.Progress, in ScanInput) error {
	if pr.LockedDevice != "" {
		if pr.LockedDevice != in.DeviceID {
			return ErrDeviceMismatch
		}
		return nil
	}

	member := in.MemberName
	if member == "" {
		member = DefaultMemberName
	}

	lockedDevice, lockedMember, err := s.progressRepo.ClaimDeviceLock(ctx, in.TeamName, in.DeviceID, member)
	if err != nil {
		return fmt.Errorf("claim device lock: %w", err)
	}
	pr.LockedDevice = lockedDevice
	pr.LockedMember = lockedMember

	if lockedDevice != in.DeviceID {
		return ErrDeviceMismatch
	}
	return nil
}

func (s *VerificationService) confirmStart(ctx context.Context, in ScanInput, rt route.Route, at time.Time, retries int) (VerifyResult, error) {
	// The first hint is fetched before the slot is committed so a catalog
	// failure leaves the team at the gate instead of mid-route with no clue.
	hint, found, err := s.catalog.GetHint(ctx, rt.Intermediates[0])
	if err != nil {
		return VerifyResult{}, fmt.Errorf("get hint for %s: %w", rt.Intermediates[0], err)
	}
	if !found {
		return VerifyResult{}, fmt.Errorf("hint missing for checkpoint %s", rt.Intermediates[0])
	}

	if err := s.progressRepo.ConfirmSlot(ctx, in.TeamName, progress.SlotStart, rt.Start, at); err != nil {
		if errors.Is(err, progress.ErrSlotTaken) && retries > 0 {
			return s.verify(ctx, in, retries-1)
		}
		return VerifyResult{}, fmt.Errorf("confirm start: %w", err)
	}

	s.logger.InfoContext(ctx, "start confirmed",
		"team", in.TeamName,
		"device", in.DeviceID,
	)

	return VerifyResult{Correct: true, NextHint: hint}, nil
}

func (s *VerificationService) confirmIntermediate(ctx context.Context, in ScanInput, rt route.Route, slot progress.Slot, at time.Time, retries int) (VerifyResult, error) {
	code := routeCode(rt, slot)

	hint := CompletionHint
	if slot != progress.SlotLocation5 {
		nextCode := routeCode(rt, slot+1)
		h, found, err := s.catalog.GetHint(ctx, nextCode)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "hint lookup failed, falling back to completion hint",
				"team", in.TeamName,
				"checkpoint", nextCode,
				"error", err,
			)
		case found:
			hint = h
		}
	}

	if err := s.progressRepo.ConfirmSlot(ctx, in.TeamName, slot, code, at); err != nil {
		if errors.Is(err, progress.ErrSlotTaken) && retries > 0 {
			return s.verify(ctx, in, retries-1)
		}
		return VerifyResult{}, fmt.Errorf("confirm %s: %w", slot, err)
	}

	if err := s.activityRepo.Append(ctx, activity.NewEntry(in.TeamName, code, at)); err != nil {
		return VerifyResult{}, fmt.Errorf("append activity: %w", err)
	}

	s.logger.InfoContext(ctx, "checkpoint confirmed",
		"team", in.TeamName,
		"slot", slot.String(),
		"checkpoint", code,
	)

	return VerifyResult{Correct: true, NextHint: hint}, nil
}

func routeCode(rt route.Route, slot progress.Slot) string {
	switch {
	case slot == progress.SlotStart:
		return rt.Start
	case slot == progress.SlotEnd:
		return rt.End
	case slot.IsIntermediate():
		return rt.Intermediates[int(slot)-1]
	default:
		return ""
	}
}
