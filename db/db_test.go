// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/prayer-wall/cliparse"
)

func TestDefaultTopics(t *testing.T) {
	topics, err := DefaultTopics()
	require.NoError(t, err)
	require.Len(t, topics, 37)

	seen := make(map[int64]bool)
	var mains int
	for _, topic := range topics {
		if topic.ParentID == nil {
			mains++
		} else {
			assert.True(t, seen[*topic.ParentID], "topic %d listed before its parent", topic.ID)
		}
		seen[topic.ID] = true
	}
	assert.Equal(t, 15, mains)

	byID := make(map[int64]int)
	for i, topic := range topics {
		byID[topic.ID] = i
	}
	lostJob := topics[byID[16]]
	require.NotNil(t, lostJob.ParentID)
	assert.Equal(t, int64(1), *lostJob.ParentID)
	assert.Nil(t, topics[byID[11]].ParentID)
}

func TestParseCatalog_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"invalid yaml", "topics: [", "failed to parse"},
		{"zero id", "topics:\n  - id: 0\n    title: A\n    category: a\n", "id must be positive"},
		{"missing title", "topics:\n  - id: 1\n    category: a\n", "title is required"},
		{"missing category", "topics:\n  - id: 1\n    title: A\n", "category is required"},
		{"duplicate id", "topics:\n  - id: 1\n    title: A\n    category: a\n    subcategories:\n      - id: 1\n        title: B\n", "duplicate id"},
		{"nested too deep", "topics:\n  - id: 1\n    title: A\n    category: a\n    subcategories:\n      - id: 2\n        title: B\n        subcategories:\n          - id: 3\n            title: C\n", "cannot be nested"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseCatalog_SubcategoryInheritsCategory(t *testing.T) {
	topics, err := ParseCatalog([]byte(`
topics:
  - id: 5
    title: Health
    category: health
    subcategories:
      - id: 50
        title: Surgery
      - id: 51
        title: Recovery
        category: recovery
`))
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "health", topics[1].Category)
	assert.Equal(t, "recovery", topics[2].Category)
}

func TestCreateSchema(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, CreateSchema(ctx, conn, cliparse.DatabaseSQLite))
	require.NoError(t, CreateSchema(ctx, conn, cliparse.DatabaseSQLite), "schema creation must be repeatable")

	for _, table := range []string{"topic", "prayer_request", "device_prayer", "device"} {
		var n int
		require.NoError(t, conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table))
		assert.Zero(t, n, table)
	}

	err = CreateSchema(ctx, conn, "mysql")
	require.Error(t, err)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestSqliteDSN(t *testing.T) {
	plain := sqliteDSN("prayer.db")
	assert.True(t, strings.HasPrefix(plain, "prayer.db?"))
	assert.Contains(t, plain, "_txlock=immediate")

	withQuery := sqliteDSN("file:prayer.db?mode=rwc")
	assert.True(t, strings.HasPrefix(withQuery, "file:prayer.db?mode=rwc&"))
}
