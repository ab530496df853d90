package id

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestRandomGenerator_Format(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator("TR")
	pattern := regexp.MustCompile(`^TR-\d{6}$`)

	for i := 0; i < 200; i++ {
		teamID, err := gen.NewTeamID()
		if err != nil {
			t.Fatalf("NewTeamID error: %v", err)
		}
		if !pattern.MatchString(teamID) {
			t.Fatalf("id %q does not match PREFIX-NNNNNN", teamID)
		}

		n, err := strconv.Atoi(strings.TrimPrefix(teamID, "TR-"))
		if err != nil {
			t.Fatalf("parse digits of %q: %v", teamID, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("digits %d out of range [100000, 999999]", n)
		}
	}
}

func TestRandomGenerator_DefaultsEmptyPrefix(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator("  ")
	teamID, err := gen.NewTeamID()
	if err != nil {
		t.Fatalf("NewTeamID error: %v", err)
	}
	if !strings.HasPrefix(teamID, "TR-") {
		t.Fatalf("expected TR- prefix fallback, got %q", teamID)
	}
}
