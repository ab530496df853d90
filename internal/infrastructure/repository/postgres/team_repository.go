package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/treasurerun/hunt-api/internal/domain/team"
	qb "github.com/treasurerun/hunt-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertInto("teams").
		Columns("name", "public_id", "members").
		Values(item.Name, item.ID, pq.StringArray(item.Members)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build insert team query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.ErrNameTaken
		}
		return crerr.Wrap(err, "insert team")
	}
	return nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, crerr.Wrap(err, "build select team query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "select team by name")
	}

	return team.Team{
		Name:    row.Name,
		ID:      row.PublicID,
		Members: append([]string(nil), row.Members...),
	}, true, nil
}

func (r *TeamRepository) ExistsByID(ctx context.Context, teamID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build count team query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, crerr.Wrap(err, "count teams by public id")
	}
	return count > 0, nil
}
