// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/db"
	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/notify"
	"github.com/danielhkuo/prayer-wall/store"
)

// Topic ids from the default catalog used throughout the tests
const (
	TopicJob        int64 = 1  // main category with subcategories
	TopicLostJob    int64 = 16 // subcategory of TopicJob
	TopicGratitude  int64 = 11 // main category without subcategories
	TestAdminKey          = "test-admin-key"
	postgresEnvName       = "TEST_DATABASE_URL"
)

// SetupTestDB creates a fresh database with the full schema and the default
// topic catalog. It uses PostgreSQL when TEST_DATABASE_URL is set and a
// throwaway SQLite file otherwise.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	dbType, url := cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "prayer-wall.db")
	if pgURL := os.Getenv(postgresEnvName); pgURL != "" {
		dbType, url = cliparse.DatabasePostgres, pgURL
	}

	conn, err := db.Open(ctx, dbType, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dbType == cliparse.DatabasePostgres {
		_, err = conn.ExecContext(ctx, `
			DROP TABLE IF EXISTS device_prayer CASCADE;
			DROP TABLE IF EXISTS prayer_request CASCADE;
			DROP TABLE IF EXISTS device CASCADE;
			DROP TABLE IF EXISTS topic CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(ctx, conn, dbType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	topics, err := db.DefaultTopics()
	if err != nil {
		t.Fatalf("Failed to load topic catalog: %v", err)
	}
	if _, err := store.New(conn).SeedTopics(ctx, topics); err != nil {
		t.Fatalf("Failed to seed topics: %v", err)
	}

	return conn
}

// SetupTestStore returns a Store over a fresh test database.
func SetupTestStore(t *testing.T, opts ...store.Option) (*store.Store, *sqlx.DB) {
	t.Helper()
	conn := SetupTestDB(t)
	return store.New(conn, opts...), conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    cliparse.DatabaseSQLite,
		AdminKey:        TestAdminKey,
		PrayerTTL:       store.DefaultTTL,
		PushConcurrency: 4,
		PushTimeout:     time.Second,
		RateLimit:       1000,
		RateBurst:       1000,
	}
}

// CreateTestRequest creates an active prayer request. An empty deviceID
// creates an anonymous request.
func CreateTestRequest(t *testing.T, st *store.Store, topicID int64, deviceID string) models.PrayerRequest {
	t.Helper()

	params := store.CreateParams{TopicID: &topicID}
	if deviceID != "" {
		params.DeviceID = &deviceID
	}

	req, err := st.CreateRequest(context.Background(), params)
	if err != nil {
		t.Fatalf("Failed to create test prayer request: %v", err)
	}
	return req
}

// ExpireRequest moves a request's expiry into the past.
func ExpireRequest(t *testing.T, conn *sqlx.DB, requestID string) {
	t.Helper()

	past := time.Now().UTC().Add(-time.Hour)
	_, err := conn.Exec(`UPDATE prayer_request SET expires_at = $1 WHERE id = $2`, past, requestID)
	if err != nil {
		t.Fatalf("Failed to expire prayer request: %v", err)
	}
}

// RegisterTestDevice registers a device with a push token.
func RegisterTestDevice(t *testing.T, st *store.Store, deviceID, pushToken string) {
	t.Helper()

	_, err := st.RegisterDevice(context.Background(), models.Device{
		DeviceID:  deviceID,
		PushToken: &pushToken,
		Platform:  models.PlatformIOS,
	})
	if err != nil {
		t.Fatalf("Failed to register test device: %v", err)
	}
}

// RecordingNotifier captures every message it is asked to deliver.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
	Fail     bool
}

func (n *RecordingNotifier) Notify(_ context.Context, msg notify.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return !n.Fail
}

// Messages returns a copy of the captured messages.
func (n *RecordingNotifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
