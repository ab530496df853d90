package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/treasurerun/hunt-api/internal/domain/route"
	qb "github.com/treasurerun/hunt-api/internal/platform/querybuilder"
)

type RouteRepository struct {
	db *sqlx.DB
}

func NewRouteRepository(db *sqlx.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(ctx context.Context, item route.Route) error {
	query, args, err := qb.InsertInto("team_routes").
		Columns("team_name", "start_code", "loc1_code", "loc2_code", "loc3_code", "loc4_code", "loc5_code", "end_code").
		Values(
			item.TeamName,
			item.Start,
			item.Intermediates[0],
			item.Intermediates[1],
			item.Intermediates[2],
			item.Intermediates[3],
			item.Intermediates[4],
			item.End,
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build insert route query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert route")
	}
	return nil
}

func (r *RouteRepository) GetByTeam(ctx context.Context, teamName string) (route.Route, bool, error) {
	query, args, err := qb.Select("*").From("team_routes").
		Where(qb.Eq("team_name", teamName)).
		Limit(1).
		ToSQL()
	if err != nil {
		return route.Route{}, false, crerr.Wrap(err, "build select route query")
	}

	var row routeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return route.Route{}, false, nil
		}
		return route.Route{}, false, crerr.Wrap(err, "select route by team")
	}

	return route.Route{
		TeamName: row.TeamName,
		Start:    row.StartCode,
		Intermediates: [route.IntermediateCount]string{
			row.Loc1Code,
			row.Loc2Code,
			row.Loc3Code,
			row.Loc4Code,
			row.Loc5Code,
		},
		End: row.EndCode,
	}, true, nil
}
