package infrastructures

import (
	"time"

	"github.com/sirupsen/logrus"
)

// logger is shared by the injector-built services; package-level logrus calls
// use the same formatter and level.
var logger = newLogger()

func newLogger() *logrus.Logger {
	formatter := &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}

	l := logrus.New()
	l.SetFormatter(formatter)
	logrus.SetFormatter(formatter)
	return l
}

func GetLogger() *logrus.Logger {
	return logger
}

func configureLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logrus.SetLevel(lvl)
}
