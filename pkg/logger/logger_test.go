package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := newLogger()

	formatter, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLoggerFallback(t *testing.T) {
	retrieved := G(context.Background())

	require.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	entry := logrus.NewEntry(logrus.New()).WithField("component", "discovery")
	ctx := WithLogger(context.Background(), entry)

	retrieved := G(ctx)
	assert.Equal(t, "discovery", retrieved.Data["component"])
}

func TestFieldChaining(t *testing.T) {
	ctx := WithLogger(context.Background(),
		logrus.NewEntry(logrus.New()).WithField("skill", "commit-helper"))
	ctx = WithLogger(ctx, G(ctx).WithField("location", "personal"))

	final := G(ctx)
	assert.Equal(t, "commit-helper", final.Data["skill"])
	assert.Equal(t, "personal", final.Data["location"])
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	setFormat(l, "json")

	ctx := WithLogger(context.Background(), logrus.NewEntry(l))
	G(ctx).Info("scanning skills")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "info", logEntry["logLevel"])
	assert.Equal(t, "scanning skills", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
}

func TestSetLogLevel(t *testing.T) {
	assert.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("nope"))

	require.NoError(t, SetLogLevel("info"))
}
