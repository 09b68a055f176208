package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ConsoleMessage is one renderer log line as shown in the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger tees a render's log output to the server log and to that render's
// console channel. Sends never block; messages that do not fit are counted.
type WebLogger struct {
	renderID    string
	next        core.Logger
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates a logger for one render. A nil next discards server-side output.
func NewWebLogger(renderID string, next core.Logger, consoleChan chan<- ConsoleMessage) *WebLogger {
	if next == nil {
		next = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		next:        next,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.next.Printf("[%s] "+format, append([]interface{}{wl.renderID}, args...)...)

	if wl.consoleChan == nil {
		return
	}
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     consoleLevel(message),
	}:
	default:
		wl.dropped.Add(1)
	}
}

// Dropped reports how many messages were discarded because the console channel was full
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

func consoleLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"), strings.HasPrefix(lower, "failed"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	default:
		return "info"
	}
}
