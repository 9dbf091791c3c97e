// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/prayer-wall/store"
	"github.com/danielhkuo/prayer-wall/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestCreateRequest(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	req, err := st.CreateRequest(ctx, store.CreateParams{
		TopicID:     ptr(testutil.TopicLostJob),
		DeviceID:    ptr("device-a"),
		Description: ptr("  Please pray for my interview  "),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, testutil.TopicLostJob, req.TopicID)
	assert.Equal(t, "I just lost my job", req.TopicTitle)
	require.NotNil(t, req.DeviceID)
	assert.Equal(t, "device-a", *req.DeviceID)
	require.NotNil(t, req.Description)
	assert.Equal(t, "Please pray for my interview", *req.Description)
	assert.Zero(t, req.PrayerCount)
	assert.Zero(t, req.ActivePrayers)
	assert.WithinDuration(t, req.CreatedAt.Add(store.DefaultTTL), req.ExpiresAt, time.Millisecond)
}

func TestCreateRequest_Anonymous(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)

	req, err := st.CreateRequest(context.Background(), store.CreateParams{
		TopicID:     ptr(testutil.TopicGratitude),
		DeviceID:    ptr("   "),
		Description: ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, req.DeviceID)
	assert.Nil(t, req.Description)
}

func TestCreateRequest_Validation(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)

	tests := []struct {
		name   string
		params store.CreateParams
		field  string
	}{
		{
			name:   "missing topic",
			params: store.CreateParams{},
			field:  "topic_id",
		},
		{
			name:   "unknown topic",
			params: store.CreateParams{TopicID: ptr(int64(9999))},
			field:  "topic_id",
		},
		{
			name: "description too long",
			params: store.CreateParams{
				TopicID:     ptr(testutil.TopicJob),
				Description: ptr(strings.Repeat("a", store.MaxDescriptionLength+1)),
			},
			field: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.CreateRequest(context.Background(), tt.params)

			var verr *store.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateRequest_MaxLengthCountsCharacters(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)

	_, err := st.CreateRequest(context.Background(), store.CreateParams{
		TopicID:     ptr(testutil.TopicJob),
		Description: ptr(strings.Repeat("ü", store.MaxDescriptionLength)),
	})
	assert.NoError(t, err)
}

func TestGetRequest(t *testing.T) {
	st, conn := testutil.SetupTestStore(t)
	ctx := context.Background()
	created := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")

	got, err := st.GetRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Job", got.TopicTitle)

	_, err = st.GetRequest(ctx, "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)

	testutil.ExpireRequest(t, conn, created.ID)
	_, err = st.GetRequest(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetRequest_ExpiresWithClock(t *testing.T) {
	now := time.Now().UTC()
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, store.WithClock(func() time.Time { return now }), store.WithTTL(time.Hour))
	ctx := context.Background()

	req := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")

	now = now.Add(59 * time.Minute)
	_, err := st.GetRequest(ctx, req.ID)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = st.GetRequest(ctx, req.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListActive(t *testing.T) {
	st, conn := testutil.SetupTestStore(t)
	ctx := context.Background()

	onMain := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	onSub := testutil.CreateTestRequest(t, st, testutil.TopicLostJob, "")
	other := testutil.CreateTestRequest(t, st, testutil.TopicGratitude, "")
	expired := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	testutil.ExpireRequest(t, conn, expired.ID)

	all, err := st.ListActive(ctx, store.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID, onSub.ID, onMain.ID}, ids(all))

	t.Run("main category includes subcategories", func(t *testing.T) {
		got, err := st.ListActive(ctx, store.ListParams{TopicID: ptr(testutil.TopicJob)})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{onMain.ID, onSub.ID}, ids(got))
	})

	t.Run("subcategory matches only itself", func(t *testing.T) {
		got, err := st.ListActive(ctx, store.ListParams{TopicID: ptr(testutil.TopicLostJob)})
		require.NoError(t, err)
		assert.Equal(t, []string{onSub.ID}, ids(got))
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := st.ListActive(ctx, store.ListParams{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{onSub.ID, onMain.ID}, ids(page))
	})

	t.Run("empty", func(t *testing.T) {
		got, err := st.ListActive(ctx, store.ListParams{TopicID: ptr(int64(2))})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestListByDevice(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	mine := testutil.CreateTestRequest(t, st, testutil.TopicJob, "device-a")
	testutil.CreateTestRequest(t, st, testutil.TopicJob, "device-b")
	testutil.CreateTestRequest(t, st, testutil.TopicJob, "")

	got, err := st.ListByDevice(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, []string{mine.ID}, ids(got))

	_, err = st.ListByDevice(ctx, " ")
	var verr *store.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListJoined(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	first := testutil.CreateTestRequest(t, st, testutil.TopicJob, "")
	second := testutil.CreateTestRequest(t, st, testutil.TopicGratitude, "")
	testutil.CreateTestRequest(t, st, testutil.TopicGratitude, "")

	_, err := st.Join(ctx, first.ID, "device-a")
	require.NoError(t, err)
	_, err = st.Join(ctx, second.ID, "device-a")
	require.NoError(t, err)
	_, err = st.Complete(ctx, first.ID, "device-a")
	require.NoError(t, err)

	joined, err := st.ListJoined(ctx, "device-a")
	require.NoError(t, err)
	require.Len(t, joined, 2)

	byID := make(map[string]bool)
	for _, j := range joined {
		byID[j.ID] = j.CompletedAt != nil
		assert.False(t, j.JoinedAt.IsZero())
	}
	assert.Equal(t, map[string]bool{first.ID: true, second.ID: false}, byID)
}
