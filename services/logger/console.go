package logsvc

import (
	"log"
	"os"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

// ConsoleLogger writes to the standard logger only. Used in development and
// tests where shipping events to Rollbar is unwanted.
type ConsoleLogger struct {
	std    *log.Logger
	silent bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(silent bool) *ConsoleLogger {
	return &ConsoleLogger{std: log.New(os.Stderr, "", log.LstdFlags), silent: silent}
}

func (l *ConsoleLogger) Enable(bool) {}

func (l *ConsoleLogger) print(level, msg string, args []interface{}) {
	if l.silent {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }
func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	os.Exit(1)
}
