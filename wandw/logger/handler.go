package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

// Handler is a compact colored terminal handler. Records carrying a
// "type" attr (cmd, db, sys, ui) get a colored tag so the interleaved
// command/clock/sync output stays readable.
type Handler struct {
	mu    sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

func NewHandler() *Handler {
	return &Handler{level: slog.LevelDebug}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		level: h.level,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *Handler) WithGroup(string) slog.Handler { return h }

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var level, tag string
	switch r.Level {
	case slog.LevelDebug:
		level = colorPurple + "DEBUG" + colorReset
	case slog.LevelInfo:
		level = colorGreen + "INFO " + colorReset
	case slog.LevelWarn:
		level = colorYellow + "WARN " + colorReset
	case slog.LevelError:
		level = colorRed + "ERROR" + colorReset
	}

	var parts []string
	collect := func(a slog.Attr) bool {
		if a.Key == "type" {
			tag = typeTag(a.Value.String())
			return true
		}
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool { return collect(a) })

	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Printf("%s %s %s%s", time.Now().Format("15:04:05"), level, tag, r.Message)
	if len(parts) > 0 {
		fmt.Printf(" %s(%s)%s", colorCyan, strings.Join(parts, " "), colorReset)
	}
	fmt.Println()
	return nil
}

func typeTag(t string) string {
	switch t {
	case "cmd":
		return colorBlue + "[CMD] " + colorReset
	case "db":
		return colorCyan + "[DB]  " + colorReset
	case "sys":
		return colorGreen + "[SYS] " + colorReset
	case "ui":
		return colorPurple + "[UI]  " + colorReset
	}
	return ""
}
