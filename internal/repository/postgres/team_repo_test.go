package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

var teamRowColumns = []string{"id", "name", "event_id", "leader_id"}

func TestTeamRepository_Create(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO\s+"?teams"?`).
		WithArgs("rocket", int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	team := &model.Team{Name: "rocket", EventID: 2, LeaderID: 1}
	require.NoError(t, NewTeamRepository(sqlDB).Create(context.Background(), team))
	assert.Equal(t, int64(3), team.ID)
}

func TestTeamRepository_GetForUpdate(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?teams"?.+FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(teamRowColumns).AddRow(3, "rocket", 2, 1))

	got, err := NewTeamRepository(sqlDB).GetForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &model.Team{ID: 3, Name: "rocket", EventID: 2, LeaderID: 1}, got)
}

func TestTeamRepository_GetNotFound(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?teams"?`).WillReturnRows(sqlmock.NewRows(teamRowColumns))

	got, err := NewTeamRepository(sqlDB).Get(context.Background(), 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, got)
}

func TestTeamRepository_ListByEvent(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?teams"?`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(teamRowColumns).
			AddRow(3, "rocket", 2, 1).
			AddRow(9, "comet", 2, 4))

	teams, err := NewTeamRepository(sqlDB).ListByEvent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "comet", teams[1].Name)
}

func TestTeamRepository_AddMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sqlDB, mock := setupMockDB(t)
		mock.ExpectQuery(`INSERT INTO\s+"?team_members"?`).
			WithArgs(int64(3), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		member := &model.TeamMember{TeamID: 3, UserID: 5}
		require.NoError(t, NewTeamRepository(sqlDB).AddMember(context.Background(), member))
		assert.Equal(t, int64(11), member.ID)
	})

	t.Run("already a member", func(t *testing.T) {
		sqlDB, mock := setupMockDB(t)
		mock.ExpectQuery(`INSERT INTO\s+"?team_members"?`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

		err := NewTeamRepository(sqlDB).AddMember(context.Background(), &model.TeamMember{TeamID: 3, UserID: 5})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})
}

func TestTeamRepository_GetMembers(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?team_members"?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "user_id"}).AddRow(11, 3, 5))

	members, err := NewTeamRepository(sqlDB).GetMembers(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []*model.TeamMember{{ID: 11, TeamID: 3, UserID: 5}}, members)
}
