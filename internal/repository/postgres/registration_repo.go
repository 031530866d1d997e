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

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	e := db.GetExecutorFromContext(ctx, r.db)

	teamID := sql.NullInt64{}
	if reg.TeamID != nil {
		teamID = sql.NullInt64{Int64: *reg.TeamID, Valid: true}
	}

	q := psql.Insert(
		im.Into("registrations", "event_id", "user_id", "team_id", "status"),
		im.Values(psql.Arg(reg.EventID), psql.Arg(reg.UserID), psql.Arg(teamID), psql.Arg(string(reg.Status))),
		im.Returning("id"),
	)

	query, args, err := q.Build()
	if err != nil {
		return err
	}

	return errors.Wrap(e.QueryRowContext(ctx, query, args...).Scan(&reg.ID), "insert registration")
}

func (r *registrationRepository) List(ctx context.Context) ([]*model.Registration, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns("id", "event_id", "user_id", "team_id", "status"),
		sm.From("registrations"),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select registrations")
	}
	defer rows.Close()

	regs := make([]*model.Registration, 0)
	for rows.Next() {
		reg := &model.Registration{}
		var (
			teamID sql.NullInt64
			status string
		)
		if err = rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &teamID, &status); err != nil {
			return nil, err
		}
		if teamID.Valid {
			reg.TeamID = &teamID.Int64
		}
		reg.Status = model.RegistrationStatus(status)
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
