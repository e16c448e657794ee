package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	logOnce  sync.Once
	logMutex sync.Mutex
)

// SetupLogging initialises the leveled loggers. Each level writes to stdout
// (stderr for errors) and to a size-rotated file under logDir.
func SetupLogging(logDir string) {
	logOnce.Do(func() {
		infoWriter := io.MultiWriter(os.Stdout, rotatedFile(filepath.Join(logDir, "info.log")))
		warnWriter := io.MultiWriter(os.Stdout, rotatedFile(filepath.Join(logDir, "warn.log")))
		errorWriter := io.MultiWriter(os.Stderr, rotatedFile(filepath.Join(logDir, "error.log")))

		infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
		warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
		errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)

		// Override Go's default log as well.
		log.SetOutput(infoWriter)
	})
}

func rotatedFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

// Log writes a formatted entry at the given level. Falls back to the
// standard logger when SetupLogging has not run (tests).
func Log(level string, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()

	message := fmt.Sprintf(format, v...)
	logEntry := fmt.Sprintf("[%s] %s", getCallerInfo(), message)

	if infoLog == nil {
		log.Printf("%s: %s", level, logEntry)
		return
	}

	switch level {
	case "WARNING":
		warnLog.Println(logEntry)
	case "ERROR":
		errorLog.Println(logEntry)
	default:
		infoLog.Println(logEntry)
	}
}

func Info(format string, v ...interface{}) {
	Log("INFO", format, v...)
}

func Warn(format string, v ...interface{}) {
	Log("WARNING", format, v...)
}

func Error(format string, v ...interface{}) {
	Log("ERROR", format, v...)
}
