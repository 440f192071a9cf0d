package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHelpers(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	fields := logrus.Fields{"user_id": "u1"}
	LogError(logger, "save failed", errors.New("boom"), fields)
	LogWarn(logger, "index failed", nil, nil)
	LogInfo(logger, "scan done", logrus.Fields{"dispatched": 3})
	LogDebug(logger, "skipped", nil)

	entries := hook.AllEntries()
	require.Len(t, entries, 4)
	assert.Equal(t, logrus.ErrorLevel, entries[0].Level)
	assert.Equal(t, "u1", entries[0].Data["user_id"])
	assert.EqualError(t, entries[0].Data[logrus.ErrorKey].(error), "boom")
	assert.NotContains(t, fields, logrus.ErrorKey)

	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.NotContains(t, entries[1].Data, logrus.ErrorKey)
	assert.Equal(t, 3, entries[2].Data["dispatched"])
	assert.Equal(t, logrus.DebugLevel, entries[3].Level)
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogInfo(nil, "x", nil)
	})
}
