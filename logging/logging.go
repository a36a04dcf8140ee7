package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// Suppress all log messages - set before the first GetLogger
	// call (e.g. when running without --verbose).
	SuppressLogging = false

	FSComponent   = "FS"
	ToolComponent = "Tool"

	mu      sync.Mutex
	loggers = make(map[*string]*LogContext)
)

type LogContext struct {
	*logrus.Logger
}

func (self *LogContext) Info(format string, v ...interface{}) {
	self.Logger.Info(fmt.Sprintf(format, v...))
}

func (self *LogContext) Warn(format string, v ...interface{}) {
	self.Logger.Warn(fmt.Sprintf(format, v...))
}

func (self *LogContext) Error(format string, v ...interface{}) {
	self.Logger.Error(fmt.Sprintf(format, v...))
}

func GetLogger(component *string) *LogContext {
	mu.Lock()
	defer mu.Unlock()

	ctx, pres := loggers[component]
	if !pres {
		logger := logrus.New()
		logger.Out = os.Stderr
		if SuppressLogging {
			logger.Out = io.Discard
		}
		logger.Formatter = &Formatter{component: *component}

		ctx = &LogContext{Logger: logger}
		loggers[component] = ctx
	}

	return ctx
}

type Formatter struct {
	component string
}

func (self *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %v %s %s\n",
		entry.Level.String(),
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		self.component,
		entry.Message)), nil
}
