package postgres

import (
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	PublicID  string         `db:"public_id"`
	Members   pq.StringArray `db:"members"`
	CreatedAt time.Time      `db:"created_at"`
}
