package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	qb "github.com/treasurerun/hunt-api/internal/platform/querybuilder"
)

type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, item progress.Progress) error {
	query, args, err := qb.InsertInto("team_progress").
		Columns("team_name", "public_id", "locked_member", "restricted").
		Values(item.TeamName, item.TeamID, item.LockedMember, item.Restricted).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build insert progress query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert progress")
	}
	return nil
}

func (r *ProgressRepository) GetByTeam(ctx context.Context, teamName string) (progress.Progress, bool, error) {
	query, args, err := qb.Select("*").From("team_progress").
		Where(qb.Eq("team_name", teamName)).
		Limit(1).
		ToSQL()
	if err != nil {
		return progress.Progress{}, false, crerr.Wrap(err, "build select progress query")
	}
	return r.getOne(ctx, query, args)
}

func (r *ProgressRepository) FindByIdentifier(ctx context.Context, identifier string) (progress.Progress, bool, error) {
	// Generated identifier wins when a display name happens to collide.
	query, args, err := qb.Select("*").From("team_progress").
		Where(qb.Or(
			qb.Eq("public_id", identifier),
			qb.Eq("team_name", identifier),
		)).
		OrderByExpr("(public_id = ?) DESC", identifier).
		Limit(1).
		ToSQL()
	if err != nil {
		return progress.Progress{}, false, crerr.Wrap(err, "build find progress query")
	}
	return r.getOne(ctx, query, args)
}

func (r *ProgressRepository) getOne(ctx context.Context, query string, args []any) (progress.Progress, bool, error) {
	var row progressTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return progress.Progress{}, false, nil
		}
		return progress.Progress{}, false, crerr.Wrap(err, "select progress")
	}
	return row.toDomain(), true, nil
}

func (r *ProgressRepository) List(ctx context.Context) ([]progress.Progress, error) {
	query, args, err := qb.Select("*").From("team_progress").
		OrderBy("team_name").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list progress query")
	}

	var rows []progressTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select progress list")
	}

	out := make([]progress.Progress, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ClaimDeviceLock binds the device with a conditional update, then re-reads
// the row. The re-read, not the update, is the source of truth: a racer that
// lost the claim still reports the winner's lock.
func (r *ProgressRepository) ClaimDeviceLock(ctx context.Context, teamName, deviceID, memberName string) (string, string, error) {
	query, args, err := qb.Update("team_progress").
		Set("locked_device", deviceID).
		Set("locked_member", memberName).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("team_name", teamName),
			qb.IsNull("locked_device"),
		).
		ToSQL()
	if err != nil {
		return "", "", crerr.Wrap(err, "build claim device lock query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", "", crerr.Wrap(err, "claim device lock")
	}

	item, found, err := r.GetByTeam(ctx, teamName)
	if err != nil {
		return "", "", err
	}
	if !found {
		return "", "", crerr.Newf("no progress row for team %s", teamName)
	}
	return item.LockedDevice, item.LockedMember, nil
}

// ConfirmSlot fills the slot only while its code column is still NULL.
// Zero rows affected means another scan committed first.
func (r *ProgressRepository) ConfirmSlot(ctx context.Context, teamName string, slot progress.Slot, code string, at time.Time) error {
	codeCol, atCol, ok := slotColumns(slot)
	if !ok {
		return crerr.Newf("unknown slot %d", int(slot))
	}

	query, args, err := qb.Update("team_progress").
		Set(codeCol, code).
		Set(atCol, at).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("team_name", teamName),
			qb.IsNull(codeCol),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build confirm slot query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "confirm %s", slot)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return crerr.Wrap(err, "confirm slot rows affected")
	}
	if affected == 0 {
		if _, found, err := r.GetByTeam(ctx, teamName); err != nil {
			return err
		} else if !found {
			return crerr.Newf("no progress row for team %s", teamName)
		}
		return progress.ErrSlotTaken
	}
	return nil
}

func (r *ProgressRepository) SetRestricted(ctx context.Context, teamName string, restricted bool) error {
	query, args, err := qb.Update("team_progress").
		Set("restricted", restricted).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("team_name", teamName)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build set restricted query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "set restricted")
	}
	return nil
}
