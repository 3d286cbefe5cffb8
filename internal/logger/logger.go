// Package logger はlogrusのロガーを構築します。
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New は指定レベルのロガーを作成します。不明なレベルは info として扱います。
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput は出力先を指定してロガーを作成します。
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("Unknown log level, falling back to info")
	}
	log.SetLevel(lvl)
	return log
}
