package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/eventhub/internal/db"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

var eventColumns = []any{"id", "title", "description", "start_date", "end_date", "max_team_size", "creator_id"}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Insert(
		im.Into("events", "title", "description", "start_date", "end_date", "max_team_size", "creator_id"),
		im.Values(
			psql.Arg(event.Title),
			psql.Arg(event.Description),
			psql.Arg(event.StartDate),
			psql.Arg(event.EndDate),
			psql.Arg(event.MaxTeamSize),
			psql.Arg(event.CreatorID),
		),
		im.Returning("id"),
	)

	query, args, err := q.Build()
	if err != nil {
		return err
	}

	return errors.Wrap(e.QueryRowContext(ctx, query, args...).Scan(&event.ID), "insert event")
}

func (r *eventRepository) Get(ctx context.Context, id int64) (*model.Event, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(eventColumns...),
		sm.From("events"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	event, err := scanEvent(e.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select event")
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(eventColumns...),
		sm.From("events"),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select events")
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(row interface{ Scan(dest ...any) error }) (*model.Event, error) {
	e := &model.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.MaxTeamSize, &e.CreatorID); err != nil {
		return nil, err
	}
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	return e, nil
}
