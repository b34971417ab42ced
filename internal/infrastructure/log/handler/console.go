package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleHandler colored human-readable handler
type ConsoleHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	groups []string

	levelColors map[slog.Level]*color.Color
	dim         *color.Color
}

// NewConsoleHandler creates a console handler
func NewConsoleHandler(out io.Writer, opts *slog.HandlerOptions, noColor bool) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	levelColors := map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgBlue),
		slog.LevelInfo:  color.New(color.FgGreen),
		slog.LevelWarn:  color.New(color.FgYellow),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	}
	dim := color.New(color.FgHiBlack)
	if noColor {
		for _, c := range levelColors {
			c.DisableColor()
		}
		dim.DisableColor()
	}

	return &ConsoleHandler{
		opts:        opts,
		mu:          &sync.Mutex{},
		out:         out,
		levelColors: levelColors,
		dim:         dim,
	}
}

// Enabled checks the minimum level
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := h.opts.Level
	if minLevel == nil {
		return level >= slog.LevelInfo
	}
	return level >= minLevel.Level()
}

// Handle writes one record
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var module, component string
	fields := make([]string, 0, len(h.attrs)+r.NumAttrs())

	collect := func(a slog.Attr, key string) {
		switch key {
		case "module":
			module = a.Value.String()
		case "component":
			component = a.Value.String()
		case "service":
		default:
			fields = append(fields, key+"="+a.Value.String())
		}
	}
	for _, a := range h.attrs {
		collect(a, a.Key)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a, h.qualify(a.Key))
		return true
	})

	prefix := ""
	if module != "" && component != "" {
		prefix = fmt.Sprintf(" [%s/%s]", module, component)
	} else if module != "" {
		prefix = fmt.Sprintf(" [%s]", module)
	}

	var b strings.Builder
	b.WriteString(h.levelColor(r.Level).Sprintf("%-5s", r.Level.String()))
	b.WriteString(" ")
	b.WriteString(h.dim.Sprint(r.Time.Format("2006-01-02T15:04:05.000Z07:00")))
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(h.dim.Sprint(f))
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a handler carrying extra attributes
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that prefixes keys with name
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *ConsoleHandler) qualify(key string) string {
	if len(h.groups) == 0 || key == "module" || key == "component" {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

// levelColor picks the color for a level
func (h *ConsoleHandler) levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.levelColors[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levelColors[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.levelColors[slog.LevelInfo]
	default:
		return h.levelColors[slog.LevelDebug]
	}
}
