package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
)

func captured(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := New(&config.LoggingConfig{Level: level, Format: "json", Output: "stdout"})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planner.log")
	l, err := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)

	l.Info("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	l, buf := captured(t, "debug")

	l.LogRequest("GET", "/api/trips", "curl", "127.0.0.1", "demo-user", 200, 3)
	assert.Equal(t, "info", lastEntry(t, buf)["level"])

	l.LogRequest("GET", "/api/trips/x", "curl", "127.0.0.1", "demo-user", 404, 1)
	entry := lastEntry(t, buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "demo-user", entry["user_id"])
	assert.Equal(t, "request", entry["type"])

	l.LogRequest("POST", "/api/trips", "curl", "127.0.0.1", "demo-user", 500, 9)
	assert.Equal(t, "error", lastEntry(t, buf)["level"])
}

func TestLogItinerary(t *testing.T) {
	l, buf := captured(t, "info")

	l.LogItinerary("it-1", "generate", 2, 2, 800)
	entry := lastEntry(t, buf)
	assert.Equal(t, "it-1", entry["itinerary_id"])
	assert.Equal(t, "generate", entry["action"])
	assert.EqualValues(t, 800, entry["total_cost"])
}

func TestLogStoreAndCache(t *testing.T) {
	l, buf := captured(t, "debug")

	l.LogStore("orm", "GetTripByID", "trips", 2, errors.New("connection refused"))
	entry := lastEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])

	l.LogCache("get", "attractions:all", true, nil)
	entry = lastEntry(t, buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, true, entry["hit"])
}

func TestLogJob(t *testing.T) {
	l, buf := captured(t, "info")

	l.LogJob("workspace_sweep", true, 1, map[string]interface{}{"evicted": 3})
	entry := lastEntry(t, buf)
	assert.Equal(t, "Job completed", entry["msg"])
	assert.EqualValues(t, 3, entry["evicted"])

	l.LogJob("cache_warm", false, 1, nil)
	assert.Equal(t, "Job failed", lastEntry(t, buf)["msg"])
}

func TestDefaultLogger(t *testing.T) {
	require.NoError(t, Init(&config.LoggingConfig{Level: "warn"}))
	assert.NotNil(t, GetLogger())
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())
}

func TestEntriesCarryServiceAndType(t *testing.T) {
	l, buf := captured(t, "info")

	l.LogSecurity("invalid_user_id", "", "10.0.0.1", map[string]interface{}{"type": "spoofed", "path": "/api/trips"})
	entry := lastEntry(t, buf)
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "security", entry["type"])
	assert.Equal(t, "/api/trips", entry["path"])
}

func TestNew_BothOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	l, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: "both", FilePath: path, MaxSize: 1})
	require.NoError(t, err)

	l.LogSystem("apisrv", "startup", true, nil)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"apisrv"`)
}
