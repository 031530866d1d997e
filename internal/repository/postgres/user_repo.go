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

var userColumns = []any{"id", "username", "password", "name", "email", "role"}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user and sets user.ID
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Insert(
		im.Into("users", "username", "password", "name", "email", "role"),
		im.Values(psql.Arg(user.Username), psql.Arg(user.Password), psql.Arg(user.Name), psql.Arg(user.Email), psql.Arg(string(user.Role))),
		im.Returning("id"),
	)

	query, args, err := q.Build()
	if err != nil {
		return err
	}

	err = e.QueryRowContext(ctx, query, args...).Scan(&user.ID)
	if isPgError(err, pgUniqueViolation) {
		return repository.ErrAlreadyExists
	}
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepository) getBy(ctx context.Context, column string, value any) (*model.User, error) {
	e := db.GetExecutorFromContext(ctx, r.db)

	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote(column).EQ(psql.Arg(value))),
	)

	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	u, err := scanUser(e.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select user by %s", column)
	}
	return u, nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Email, &role); err != nil {
		return nil, err
	}

	r, err := model.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = r
	return u, nil
}
