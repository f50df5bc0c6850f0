// Package logger builds the process logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/config"
)

// New returns a logrus logger writing to stdout with the configured level
// and format.  An unknown level falls back to info; any format other than
// "text" is JSON.
func New(c config.LogConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(c.Format) {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
