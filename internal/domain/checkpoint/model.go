package checkpoint

import "strings"

// Checkpoint is a physical hunt location: a short QR code plus the clue
// revealed to a team once the previous location is confirmed.
type Checkpoint struct {
	Code string
	Hint string
}

// Normalize folds user and operator input noise (casing, stray whitespace)
// out of a scanned or stored code before comparison.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
