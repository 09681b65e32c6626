// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is shared by every package. Components attach their own fields with
// Log.WithField("component", ...).
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel parses a level name ("debug", "info", "warn", ...). Unknown names
// leave the current level untouched and return the parse error.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	return nil
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
