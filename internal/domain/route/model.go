package route

import (
	"fmt"
	"strings"

	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
)

// IntermediateCount is the number of checkpoints drawn between the start and
// end sentinel.
const IntermediateCount = 5

// Route is the ordered checkpoint sequence assigned to a team at
// provisioning: the fixed sentinel, five drawn codes, the sentinel again.
// Immutable after creation.
type Route struct {
	TeamName      string
	Start         string
	Intermediates [IntermediateCount]string
	End           string
}

func (r Route) Validate() error {
	if strings.TrimSpace(r.TeamName) == "" {
		return fmt.Errorf("route team name is required")
	}
	if strings.TrimSpace(r.Start) == "" {
		return fmt.Errorf("route start code is required")
	}
	if r.End != r.Start {
		return fmt.Errorf("route end code must equal the start sentinel")
	}

	seen := make(map[string]struct{}, IntermediateCount)
	for i, code := range r.Intermediates {
		normalized := checkpoint.Normalize(code)
		if normalized == "" {
			return fmt.Errorf("route checkpoint %d is empty", i+1)
		}
		if normalized == checkpoint.Normalize(r.Start) {
			return fmt.Errorf("route checkpoint %d duplicates the sentinel", i+1)
		}
		if _, dup := seen[normalized]; dup {
			return fmt.Errorf("route checkpoint %d is a duplicate", i+1)
		}
		seen[normalized] = struct{}{}
	}

	return nil
}
