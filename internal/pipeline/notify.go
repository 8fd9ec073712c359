package pipeline

import "log/slog"

// Notifier receives user-facing progress messages. The MCP layer collects
// them into tool output; the default sends them to the structured log.
type Notifier interface {
	Show(msg string)
}

// LogNotifier writes notifications to slog at info level.
type LogNotifier struct{}

func (LogNotifier) Show(msg string) {
	slog.Info("notify", slog.String("msg", msg))
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Show(msg string) { f(msg) }
