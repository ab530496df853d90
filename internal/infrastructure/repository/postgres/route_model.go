package postgres

import "time"

type routeTableModel struct {
	ID        int64     `db:"id"`
	TeamName  string    `db:"team_name"`
	StartCode string    `db:"start_code"`
	Loc1Code  string    `db:"loc1_code"`
	Loc2Code  string    `db:"loc2_code"`
	Loc3Code  string    `db:"loc3_code"`
	Loc4Code  string    `db:"loc4_code"`
	Loc5Code  string    `db:"loc5_code"`
	EndCode   string    `db:"end_code"`
	CreatedAt time.Time `db:"created_at"`
}
