package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/store"
)

type MockPgxConn struct {
	mock.Mock
}

func (m *MockPgxConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

func (m *MockPgxConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), called.Error(0)
}

type row struct {
	value []byte
	err   error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

func TestPostgresStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	conn := &MockPgxConn{}
	conn.On("QueryRow", ctx, mock.Anything, []any{"features/a/enabled"}).Return(row{value: []byte("true")})
	conn.On("QueryRow", ctx, mock.Anything, []any{"features/b/enabled"}).Return(row{err: pgx.ErrNoRows})
	conn.On("QueryRow", ctx, mock.Anything, []any{"features/c/enabled"}).Return(row{err: errors.New("conn closed")})
	conn.On("Exec", ctx, mock.Anything, []any{"features/a/enabled", []byte("false")}).Return(nil)
	conn.On("Exec", ctx, mock.Anything, []any{"features/b/enabled", []byte("false")}).Return(errors.New("disk full"))

	s := store.NewPostgresStore(conn)

	v, found, err := s.Read(ctx, store.EnabledKey("a"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", string(v))

	_, found, err = s.Read(ctx, store.EnabledKey("b"))
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = s.Read(ctx, store.EnabledKey("c"))
	assert.ErrorIs(t, err, store.ErrReadFailed)

	require.NoError(t, s.Write(ctx, store.EnabledKey("a"), []byte("false")))
	assert.ErrorIs(t, s.Write(ctx, store.EnabledKey("b"), []byte("false")), store.ErrWriteFailed)
	assert.NoError(t, s.Close())

	conn.AssertExpectations(t)
}
