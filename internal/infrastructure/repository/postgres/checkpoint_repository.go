package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
	qb "github.com/treasurerun/hunt-api/internal/platform/querybuilder"
)

type checkpointTableModel struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	Hint      string    `db:"hint"`
	CreatedAt time.Time `db:"created_at"`
}

type CheckpointRepository struct {
	db *sqlx.DB
}

func NewCheckpointRepository(db *sqlx.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) ListCodes(ctx context.Context, excludeCode string) ([]string, error) {
	query, args, err := qb.Select("code").From("checkpoints").
		Where(qb.Expr("code <> ?", checkpoint.Normalize(excludeCode))).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list checkpoint codes query")
	}

	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select checkpoint codes")
	}
	return codes, nil
}

func (r *CheckpointRepository) GetHint(ctx context.Context, code string) (string, bool, error) {
	query, args, err := qb.Select("hint").From("checkpoints").
		Where(qb.Eq("code", checkpoint.Normalize(code))).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, crerr.Wrap(err, "build get hint query")
	}

	var hint string
	if err := r.db.GetContext(ctx, &hint, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, crerr.Wrap(err, "select checkpoint hint")
	}
	return hint, true, nil
}

func (r *CheckpointRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("checkpoints").ToSQL()
	if err != nil {
		return 0, crerr.Wrap(err, "build count checkpoints query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, crerr.Wrap(err, "count checkpoints")
	}
	return count, nil
}
