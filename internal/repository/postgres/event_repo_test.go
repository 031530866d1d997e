package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

var eventRowColumns = []string{"id", "title", "description", "start_date", "end_date", "max_team_size", "creator_id"}

func TestEventRepository_Create(t *testing.T) {
	sqlDB, mock := setupMockDB(t)

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	mock.ExpectQuery(`INSERT INTO\s+"?events"?`).
		WithArgs("Hack", "48h hackathon", start, end, 4, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	event := &model.Event{Title: "Hack", Description: "48h hackathon", StartDate: start, EndDate: end, MaxTeamSize: 4, CreatorID: 1}
	require.NoError(t, NewEventRepository(sqlDB).Create(context.Background(), event))
	assert.Equal(t, int64(2), event.ID)
}

func TestEventRepository_Get(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		sqlDB, mock := setupMockDB(t)
		mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?events"?`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(eventRowColumns).AddRow(2, "Hack", "desc", start, start.Add(time.Hour), 4, 1))

		got, err := NewEventRepository(sqlDB).Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Hack", got.Title)
		assert.Equal(t, 4, got.MaxTeamSize)
		assert.True(t, start.Equal(got.StartDate))
	})

	t.Run("not found", func(t *testing.T) {
		sqlDB, mock := setupMockDB(t)
		mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?events"?`).WillReturnRows(sqlmock.NewRows(eventRowColumns))

		got, err := NewEventRepository(sqlDB).Get(context.Background(), 2)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestEventRepository_List(t *testing.T) {
	sqlDB, mock := setupMockDB(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+"?events"?`).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(2, "first", "d", start, start, 1, 1).
			AddRow(5, "second", "d", start, start, 2, 1))

	events, err := NewEventRepository(sqlDB).List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].ID)
	assert.Equal(t, "second", events[1].Title)
}
