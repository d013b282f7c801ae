package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures a Handler.
type Options struct {
	Level slog.Leveler
	// Color is one of ColorAuto, ColorAlways or ColorNever.
	Color string
}

// Handler is a slog.Handler for terminal output.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	prefix string
	// attrs holds pre-rendered WithAttrs output.
	attrs  string
	styles styles
}

type styles struct {
	levels map[slog.Level]lipgloss.Style
	key    lipgloss.Style
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer, opts Options) *Handler {
	level := opts.Level
	if level == nil {
		level = slog.LevelWarn
	}
	return &Handler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  level,
		styles: newStyles(newRenderer(w, opts.Color)),
	}
}

// New returns a logger backed by a Handler.
func New(w io.Writer, level slog.Level, color string) *slog.Logger {
	return slog.New(NewHandler(w, Options{Level: level, Color: color}))
}

func newRenderer(w io.Writer, color string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		r.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	}
	return r
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		levels: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("63")),
			slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("86")),
			slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			slog.LevelError: r.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		},
		key: r.NewStyle().Faint(true),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.renderLevel(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	for _, a := range attrs {
		h.appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrs = h.attrs + b.String()
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *Handler) renderLevel(level slog.Level) string {
	label := fmt.Sprintf("%-5s", level.String())
	style, ok := h.styles.levels[level]
	if !ok {
		return label
	}
	return style.Render(label)
}

func (h *Handler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			h.appendAttr(b, prefix, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	b.WriteString(quote(a.Value.String()))
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
