package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/juju/errors"
)

type LogLevel int

const (
	Verbose3 LogLevel = iota
	Verbose2
	Verbose1
	Info
	Warning
	Error
)

var levelNames = map[LogLevel]string{
	Verbose3: "verbose3",
	Verbose2: "verbose2",
	Verbose1: "verbose1",
	Info:     "info",
	Warning:  "warning",
	Error:    "error",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLevel parses the name of a level, as accepted by the --loglevel flag.
func ParseLevel(name string) (LogLevel, error) {
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}

	return Info, errors.Errorf(
		"invalid log level %q, try error, warning, info, verbose1, verbose2 or verbose3", name,
	)
}

// LogFilename is the name of the log file in the user's home dir. The
// terminal itself is the render surface, so nothing is logged to stdout or
// stderr.
const LogFilename = ".cellterm.log"

var logOut io.Writer
var logOutMtx sync.Mutex

// SetOutput makes all loggers write to w instead of the log file. Passing nil
// restores the default.
func SetOutput(w io.Writer) {
	logOutMtx.Lock()
	defer logOutMtx.Unlock()

	logOut = w
}

// printf prints a formatted message to the log output, ~/.cellterm.log by
// default.
func printf(format string, a ...interface{}) {
	logOutMtx.Lock()
	defer logOutMtx.Unlock()

	w := writer()

	fmt.Fprintf(w, "%s: ", time.Now().Format("2006-01-02T15:04:05.999"))

	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}

	fmt.Fprintf(w, format, a...)
}

// writer must be called with logOutMtx held.
func writer() io.Writer {
	if logOut == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err.Error())
		}

		fname := filepath.Join(homeDir, LogFilename)

		logFile, err := os.OpenFile(fname, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			panic(err.Error())
		}

		logOut = logFile
	}

	return logOut
}

// Logger is a leveled logger with a namespace. A nil *Logger is valid and
// discards everything, so library packages can take an optional logger
// without ever touching the log file on their own.
type Logger struct {
	minLevel LogLevel

	namespace string

	discard bool
}

func NewLogger(minLevel LogLevel) *Logger {
	return &Logger{
		minLevel: minLevel,
	}
}

func (l *Logger) thisOrDefault() *Logger {
	if l != nil {
		return l
	}

	return &Logger{
		minLevel: Info,
		discard:  true,
	}
}

func (l *Logger) WithNamespaceAppended(n string) *Logger {
	l = l.thisOrDefault()

	ns := l.namespace
	if ns != "" {
		ns += "/"
	}
	ns += n

	newLogger := *l
	newLogger.namespace = ns
	return &newLogger
}

func (l *Logger) Verbose3f(format string, a ...interface{}) {
	l.Printf(Verbose3, format, a...)
}

func (l *Logger) Verbose2f(format string, a ...interface{}) {
	l.Printf(Verbose2, format, a...)
}

func (l *Logger) Verbose1f(format string, a ...interface{}) {
	l.Printf(Verbose1, format, a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	l.Printf(Info, format, a...)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	l.Printf(Warning, format, a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	l.Printf(Error, format, a...)
}

func (l *Logger) Printf(level LogLevel, format string, a ...interface{}) {
	l = l.thisOrDefault()

	if l.discard || level < l.minLevel {
		return
	}

	if l.namespace != "" {
		printf("[%s] %s", l.namespace, fmt.Sprintf(format, a...))
	} else {
		printf("%s", fmt.Sprintf(format, a...))
	}
}
