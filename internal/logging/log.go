package logging

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

const DefaultFlags = log.LstdFlags

var level = LevelInfo

// Init sets the output and flags of the standard logger. A nil writer keeps
// the current output.
func Init(out io.Writer, flags int) {
	if out != nil {
		log.SetOutput(out)
	}
	log.SetFlags(flags)
}

func SetLevel(l Level) {
	level = l
}

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func Debug(format string, v ...interface{}) {
	if level > LevelDebug {
		return
	}
	log.Printf("[DEBG] "+format+"\n", v...)
}

func Info(format string, v ...interface{}) {
	if level > LevelInfo {
		return
	}
	log.Printf("[INFO] "+format+"\n", v...)
}

func Warn(format string, v ...interface{}) {
	if level > LevelWarn {
		return
	}
	log.Printf("[WARN] "+format+"\n", v...)
}

func Error(format string, v ...interface{}) {
	log.Printf("[ERRO] "+format+"\n", v...)
}
