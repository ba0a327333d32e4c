package events

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// GetLogger builds the process logger: stdout plus a rotated log file under
// dataDir. The file is the durable record of everything the observer did.
func GetLogger(dataDir string) *log.Logger {
	rotor := &lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "edgenodeobserver.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return log.New(io.MultiWriter(os.Stdout, rotor), "INFO: ", log.Ldate|log.Ltime)
}

// Log is the durable event log. Append writes one line to the logger and
// mirrors it to attached UI clients; the file write always happens,
// whether or not anyone is listening.
type Log struct {
	logger *log.Logger
	hub    *Hub
}

func NewLog(logger *log.Logger, hub *Hub) *Log {
	return &Log{logger: logger, hub: hub}
}

// Append durably records message and emits it to attached clients.
func (l *Log) Append(message string) {
	l.logger.Println(message)
	if l.hub != nil {
		l.hub.Broadcast(Event{Type: "log", Message: message})
	}
}

func (l *Log) Printf(format string, v ...interface{}) {
	l.logger.Printf(format, v...)
}

func (l *Log) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(format, v...)
}
