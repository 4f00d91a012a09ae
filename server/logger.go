package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	jlog "github.com/luno/jettison/log"
)

type JSONLogger struct {
	*log.Logger
}

func (l *JSONLogger) Log(_ context.Context, entry jlog.Entry) string {
	res, err := json.Marshal(entry)
	if err != nil {
		l.Logger.Printf("jlogger: failed to marshal log: %v", err)
		l.Logger.Print(entry.Message)
		return entry.Message
	}
	l.Logger.Print(string(res))
	return string(res)
}

func InitLogging() {
	jlog.SetLogger(&JSONLogger{Logger: log.New(os.Stdout, "", 0)})
}
