package activity

import "time"

// TimeOfDayLayout is how confirmation times are rendered in the log: the
// event-local wall clock, date dropped.
const TimeOfDayLayout = "15:04:05"

// Entry is one append-only audit line: a team confirmed an intermediate
// checkpoint at a given time of day. Start confirmations are not logged.
type Entry struct {
	TeamName   string
	Checkpoint string
	TimeOfDay  string
}

// NewEntry builds a log line from a confirmation time, truncating it to the
// wall clock in its own location.
func NewEntry(teamName, checkpointCode string, at time.Time) Entry {
	return Entry{
		TeamName:   teamName,
		Checkpoint: checkpointCode,
		TimeOfDay:  at.Format(TimeOfDayLayout),
	}
}
