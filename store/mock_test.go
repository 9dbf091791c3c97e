// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/store"
)

var requestColumns = []string{
	"id", "topic_id", "topic_title", "device_id", "description",
	"prayer_count", "active_prayers", "created_at", "expires_at",
}

func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return store.New(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func requestRow(id string, prayerCount int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(requestColumns).
		AddRow(id, int64(1), "Job", nil, nil, prayerCount, int64(0), now, now.Add(time.Hour))
}

func TestStats_DegradesToZeros(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\) AS active_requests`).
		WillReturnError(errors.New("connection reset"))

	assert.Equal(t, models.Stats{}, st.Stats(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoin_UniqueViolationIsNoOp(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM prayer_request r`).WillReturnRows(requestRow("req-1", 4))
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO device_prayer`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()
	mock.ExpectQuery(`FROM prayer_request r`).WillReturnRows(requestRow("req-1", 5))

	res, err := st.Join(context.Background(), "req-1", "device-a")
	require.NoError(t, err)
	assert.False(t, res.Joined)
	assert.Equal(t, int64(5), res.Request.PrayerCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoin_InsertFailure(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM prayer_request r`).WillReturnRows(requestRow("req-1", 0))
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO device_prayer`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := st.Join(context.Background(), "req-1", "device-a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanup_RollsBackOnError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM device_prayer`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM prayer_request`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := st.Cleanup(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
