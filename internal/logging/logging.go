package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes to stdout and to a rotated file under dir.
type Logger struct {
	*logrus.Logger
	file io.Closer
}

func New(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create logs folder failed: %w", err)
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))),
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     30, // days
	}

	l := logrus.New()
	// Output to both file and console
	l.SetOutput(io.MultiWriter(os.Stdout, file))
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{Logger: l, file: file}, nil
}

// Wrap adapts an existing logrus logger, e.g. one from logrus/hooks/test.
func Wrap(l *logrus.Logger) *Logger {
	return &Logger{Logger: l}
}

// WithRequestID tags entries belonging to one poll iteration.
func (l *Logger) WithRequestID(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}

// Close closes the log file; a wrapped logger has nothing to close.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
