package team

import (
	"fmt"
	"strings"
)

// MaxMembers is the registry cap on named members per team.
const MaxMembers = 4

// Team is the registry record for one participating team. The display name
// and the generated identifier are both immutable after provisioning.
type Team struct {
	Name    string
	ID      string
	Members []string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if len(t.Members) == 0 {
		return fmt.Errorf("at least one member is required")
	}
	if len(t.Members) > MaxMembers {
		return fmt.Errorf("at most %d members are allowed", MaxMembers)
	}

	return nil
}
