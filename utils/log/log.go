package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	LogV2 *logrus.Logger
)

// This init function is only for testing cases, where the entry point is
// not main function. Unit test will fail with nil pointer dereference if
// we don't init here.
func init() {
	initLogger()
}

func initLogger() {
	LogV2 = logrus.New()
	LogV2.SetOutput(os.Stdout)

	env := os.Getenv("MICROBLOG_ENV")
	if len(env) == 0 {
		env = "unknown"
	}
	if env == "prod" {
		LogV2.SetFormatter(&logrus.JSONFormatter{})
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		LogV2.SetLevel(logrus.DebugLevel)
	case "warn":
		LogV2.SetLevel(logrus.WarnLevel)
	case "error":
		LogV2.SetLevel(logrus.ErrorLevel)
	default:
		LogV2.SetLevel(logrus.InfoLevel)
	}
}
