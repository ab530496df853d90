package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/treasurerun/hunt-api/internal/domain/activity"
	qb "github.com/treasurerun/hunt-api/internal/platform/querybuilder"
)

type activityTableModel struct {
	ID             int64     `db:"id"`
	TeamName       string    `db:"team_name"`
	CheckpointCode string    `db:"checkpoint_code"`
	TimeOfDay      string    `db:"time_of_day"`
	CreatedAt      time.Time `db:"created_at"`
}

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, item activity.Entry) error {
	query, args, err := qb.InsertInto("activity_log").
		Columns("team_name", "checkpoint_code", "time_of_day").
		Values(item.TeamName, item.Checkpoint, item.TimeOfDay).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build insert activity query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert activity")
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]activity.Entry, error) {
	query, args, err := qb.Select("*").From("activity_log").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list activity query")
	}

	var rows []activityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select activity list")
	}

	out := make([]activity.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, activity.Entry{
			TeamName:   row.TeamName,
			Checkpoint: row.CheckpointCode,
			TimeOfDay:  row.TimeOfDay,
		})
	}
	return out, nil
}
