package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/eventhub/internal/db"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

var (
	teamColumns   = []any{"id", "name", "event_id", "leader_id"}
	memberColumns = []any{"id", "team_id", "user_id"}
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Insert(
		im.Into("teams", "name", "event_id", "leader_id"),
		im.Values(psql.Arg(team.Name), psql.Arg(team.EventID), psql.Arg(team.LeaderID)),
		im.Returning("id"),
	)

	query, args, err := q.Build()
	if err != nil {
		return err
	}

	return errors.Wrap(e.QueryRowContext(ctx, query, args...).Scan(&team.ID), "insert team")
}

func (r *teamRepository) Get(ctx context.Context, id int64) (*model.Team, error) {
	return r.get(ctx, id)
}

func (r *teamRepository) GetForUpdate(ctx context.Context, id int64) (*model.Team, error) {
	return r.get(ctx, id, sm.ForUpdate("teams"))
}

func (r *teamRepository) get(ctx context.Context, id int64, mods ...bob.Mod[*dialect.SelectQuery]) (*model.Team, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(teamColumns...),
		sm.From("teams"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	q.Apply(mods...)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	team := &model.Team{}
	err = e.QueryRowContext(ctx, query, args...).Scan(&team.ID, &team.Name, &team.EventID, &team.LeaderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select team")
	}
	return team, nil
}

func (r *teamRepository) ListByEvent(ctx context.Context, eventID int64) ([]*model.Team, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(teamColumns...),
		sm.From("teams"),
		sm.Where(psql.Quote("event_id").EQ(psql.Arg(eventID))),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select teams")
	}
	defer rows.Close()

	teams := make([]*model.Team, 0)
	for rows.Next() {
		team := &model.Team{}
		if err = rows.Scan(&team.ID, &team.Name, &team.EventID, &team.LeaderID); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *teamRepository) AddMember(ctx context.Context, member *model.TeamMember) error {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Insert(
		im.Into("team_members", "team_id", "user_id"),
		im.Values(psql.Arg(member.TeamID), psql.Arg(member.UserID)),
		im.Returning("id"),
	)

	query, args, err := q.Build()
	if err != nil {
		return err
	}

	err = e.QueryRowContext(ctx, query, args...).Scan(&member.ID)
	if isPgError(err, pgUniqueViolation) {
		return repository.ErrAlreadyExists
	}
	return errors.Wrap(err, "insert team member")
}

func (r *teamRepository) GetMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(memberColumns...),
		sm.From("team_members"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select team members")
	}
	defer rows.Close()

	members := make([]*model.TeamMember, 0)
	for rows.Next() {
		m := &model.TeamMember{}
		if err = rows.Scan(&m.ID, &m.TeamID, &m.UserID); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
