package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLTransactor_WithinTransaction(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name       string
		setupMock  func(sqlmock.Sqlmock)
		fn         func(ctx context.Context) error
		expectErr  error
		expectFail bool
	}{
		{
			name: "success: commit",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit()
			},
			fn: func(ctx context.Context) error {
				_, ok := ctx.Value(TxContextKey{}).(interface{ Commit() error })
				if !ok {
					return errors.New("tx is not in context")
				}
				return nil
			},
		},
		{
			name: "failure: fn error rolls back",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn:        func(ctx context.Context) error { return errBoom },
			expectErr: errBoom,
		},
		{
			name: "failure: begin error",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errBoom)
			},
			fn:        func(ctx context.Context) error { return nil },
			expectErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer sqlDB.Close()

			tt.setupMock(mock)

			err = NewSQLTransactor(sqlDB).WithinTransaction(context.Background(), tt.fn)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetExecutorFromContext(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Same(t, sqlDB, GetExecutorFromContext(context.Background(), sqlDB))

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = NewSQLTransactor(sqlDB).WithinTransaction(context.Background(), func(ctx context.Context) error {
		assert.NotSame(t, sqlDB, GetExecutorFromContext(ctx, sqlDB))
		return nil
	})
	require.NoError(t, err)
}

func TestLockTransactor_Serializes(t *testing.T) {
	tx := NewLockTransactor()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLockTransactor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewLockTransactor().WithinTransaction(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
