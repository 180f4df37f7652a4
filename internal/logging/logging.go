package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LogFormat selects the logger output encoding.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// NewLogger builds the process-wide logrus logger. JSON output is meant for
// aggregated environments, text for local runs.
func NewLogger(format LogFormat) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	switch format {
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
