package memory

import (
	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
)

// SeedCheckpoints is the demo catalog used when the service runs on the
// in-memory backend. Codes are campus landmarks; the college gate doubles as
// start and finish and never appears in a draw.
func SeedCheckpoints() []checkpoint.Checkpoint {
	return []checkpoint.Checkpoint{
		{Code: "CLG", Hint: "Back where it all began"},
		{Code: "LIB", Hint: "Shelves of a thousand stories guard your next clue"},
		{Code: "CAF", Hint: "Follow the smell of fresh coffee and fried snacks"},
		{Code: "AUD", Hint: "Where speeches echo and curtains rise"},
		{Code: "GYM", Hint: "Iron and sweat, look near the tallest hoop"},
		{Code: "LAB", Hint: "Beakers and burners mark the spot"},
		{Code: "FLD", Hint: "Open grass under the flood lights"},
		{Code: "ADM", Hint: "The tower where all the paperwork lives"},
		{Code: "PRK", Hint: "Rows of handlebars and helmets"},
	}
}
