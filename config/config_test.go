package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openhouse/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ATTENDANCE_POLICY", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("EMAIL_FROM_NAME", "")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBUrl)
	assert.Equal(t, domain.AttendanceEveryCheckIn, cfg.AttendancePolicy)
	assert.Equal(t, "noop", cfg.Mailer.Provider)
	assert.Equal(t, "Open House", cfg.Mailer.FromName)
	assert.False(t, cfg.Mailer.InsecureSkipVerify)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/openhouse")
	t.Setenv("ATTENDANCE_POLICY", "distinct_visitors")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("EMAIL_FROM_ADDRESS", "noreply@example.com")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/openhouse", cfg.DBUrl)
	assert.Equal(t, domain.AttendanceDistinctVisitors, cfg.AttendancePolicy)
	assert.Equal(t, "ses", cfg.Mailer.Provider)
	assert.Equal(t, "noreply@example.com", cfg.Mailer.FromAddress)
	assert.Equal(t, "us-east-1", cfg.Mailer.AWSRegion)
	assert.True(t, cfg.Mailer.InsecureSkipVerify)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown attendance policy", key: "ATTENDANCE_POLICY", val: "sometimes"},
		{name: "bad bool", key: "SES_INSECURE_SKIP_VERIFY", val: "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "production")
			t.Setenv("ATTENDANCE_POLICY", "")
			t.Setenv("SES_INSECURE_SKIP_VERIFY", "")
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", "warn", &buf)
	logger.Info("dropped")
	logger.Warn("kept", "event_id", "EVT-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "EVT-1", line["event_id"])

	buf.Reset()
	NewLogger("development", "", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
