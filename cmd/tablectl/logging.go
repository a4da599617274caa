package main

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to a rotating file, or nowhere when path is empty. The terminal
// belongs to the table output.
func newLogger(path string) *log.Logger {
	if path == "" {
		return log.New(io.Discard, "", 0)
	}
	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return log.New(logFile, "", log.LstdFlags)
}
