// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/store"
	"github.com/danielhkuo/prayer-wall/testutil"
)

func TestStats(t *testing.T) {
	st, conn := testutil.SetupTestStore(t)
	ctx := context.Background()

	assert.Equal(t, models.Stats{}, st.Stats(ctx))

	first := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	second := testutil.CreateTestRequest(t, st, testutil.TopicGratitude, "")
	expired := testutil.CreateTestRequest(t, st, testutil.TopicGratitude, "")

	for _, device := range []string{"a", "b", "c"} {
		_, err := st.Join(ctx, first.ID, device)
		require.NoError(t, err)
	}
	_, err := st.Complete(ctx, first.ID, "a")
	require.NoError(t, err)
	_, err = st.StartPraying(ctx, second.ID)
	require.NoError(t, err)
	_, err = st.Pray(ctx, second.ID)
	require.NoError(t, err)

	_, err = st.Join(ctx, expired.ID, "a")
	require.NoError(t, err)
	_, err = st.Complete(ctx, expired.ID, "a")
	require.NoError(t, err)
	testutil.ExpireRequest(t, conn, expired.ID)

	assert.Equal(t, models.Stats{
		ActiveRequests:   2,
		TotalPrayers:     4,
		ActivePrayers:    2,
		CompletedPrayers: 1,
	}, st.Stats(ctx))
}

func TestCleanup(t *testing.T) {
	st, conn := testutil.SetupTestStore(t)
	ctx := context.Background()

	keep := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	gone := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	_, err := st.Join(ctx, keep.ID, "device-a")
	require.NoError(t, err)
	_, err = st.Join(ctx, gone.ID, "device-a")
	require.NoError(t, err)
	testutil.ExpireRequest(t, conn, gone.ID)

	deleted, err := st.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining int
	require.NoError(t, conn.Get(&remaining, `SELECT COUNT(*) FROM prayer_request`))
	assert.Equal(t, 1, remaining)

	var links int
	require.NoError(t, conn.Get(&links, `SELECT COUNT(*) FROM device_prayer WHERE prayer_request_id = $1`, gone.ID))
	assert.Zero(t, links)

	_, err = st.GetLink(ctx, keep.ID, "device-a")
	assert.NoError(t, err)

	deleted, err = st.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = st.GetRequest(ctx, gone.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
