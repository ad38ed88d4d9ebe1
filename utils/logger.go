package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// InitLogger sets the level and the output format ("json" or text).
func InitLogger(level, format string) {
	if strings.EqualFold(format, "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}
