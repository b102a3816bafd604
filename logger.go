package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	// debugChunkDumpLen limits how many bytes of a relayed chunk are logged.
	// A value of 0 dumps the entire chunk.
	debugChunkDumpLen = 256
)

func setupLogging(debug bool) {
	logDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
	}
	ts := time.Now().Format("20060102-150405")

	logPath := filepath.Join(logDir, fmt.Sprintf("bcproxy-%s.log", ts))
	logFile, err := os.Create(logPath)
	var w io.Writer = os.Stdout
	if err == nil {
		w = io.MultiWriter(os.Stdout, logFile)
	}
	infoLogger = log.New(w, "", log.LstdFlags)
	errorLogger = log.New(w, "ERROR: ", log.LstdFlags)
	log.SetOutput(w)

	if debug {
		debugLogger = log.New(w, "DEBUG: ", log.LstdFlags)
	}
}

func logInfo(format string, v ...interface{}) {
	if infoLogger != nil {
		infoLogger.Printf(format, v...)
	}
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func logDebugChunk(prefix string, data []byte) {
	if debugLogger == nil {
		return
	}
	n := len(data)
	dump := data
	if debugChunkDumpLen > 0 && n > debugChunkDumpLen {
		dump = data[:debugChunkDumpLen]
	}
	debugLogger.Printf("%s len=%d payload=% x", prefix, n, dump)
}
