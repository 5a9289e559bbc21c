package fireauth

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_LogrusLogger(t *testing.T) {
	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	logger := NewLogrusLogger(base)
	logger.Debugf("debug %s", "message")
	logger.Warnf("warn %s", "message")
	logger.Errorf("error %s", "message")

	require.Len(t, hook.Entries, 3)
	assert.Equal(t, logrus.DebugLevel, hook.Entries[0].Level)
	assert.Equal(t, "warn message", hook.Entries[1].Message)
	assert.Equal(t, logrus.ErrorLevel, hook.Entries[2].Level)
}

func Test_ZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	logger := NewZapLogger(zap.New(core).Sugar())
	logger.Infof("info %s", "message")
	logger.Errorf("error %s", "message")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "info message", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
