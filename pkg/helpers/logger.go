package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// The Log* helpers accept a nil logger so services can run without one.

func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	logAt(logger, logrus.ErrorLevel, msg, err, fields)
}

func LogWarn(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	logAt(logger, logrus.WarnLevel, msg, err, fields)
}

func LogInfo(logger *logrus.Logger, msg string, fields logrus.Fields) {
	logAt(logger, logrus.InfoLevel, msg, nil, fields)
}

func LogDebug(logger *logrus.Logger, msg string, fields logrus.Fields) {
	logAt(logger, logrus.DebugLevel, msg, nil, fields)
}

func logAt(logger *logrus.Logger, level logrus.Level, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	entry := logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Log(level, msg)
}
