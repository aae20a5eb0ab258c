package logger

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console is a logging surface tagged with a source name. Debug, Info and Log
// prefix messages with a colored "[name]" tag; Warn and Error use the plain
// tag. Time and TimeEnd measure labeled spans.
//
// A Console never touches slog.Default or any other shared logger: it writes
// through its own *slog.Logger.
type Console struct {
	name  string
	color string
	tag   string
	plain string
	log   *slog.Logger
	now   func() time.Time

	mu     sync.Mutex
	timers map[string]time.Time
}

// ConsoleOption configures a Console.
type ConsoleOption func(*consoleConfig)

type consoleConfig struct {
	output   io.Writer
	logger   *slog.Logger
	renderer *lipgloss.Renderer
	now      func() time.Time
}

// WithConsoleOutput sets the writer used for color detection and, unless
// WithConsoleLogger is given, for log output. Nil writers are ignored.
func WithConsoleOutput(w io.Writer) ConsoleOption {
	return func(c *consoleConfig) {
		if w != nil {
			c.output = w
		}
	}
}

// WithConsoleLogger routes console output through an existing logger.
func WithConsoleLogger(l *slog.Logger) ConsoleOption {
	return func(c *consoleConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConsoleRenderer overrides the lipgloss renderer used for the tag color.
func WithConsoleRenderer(r *lipgloss.Renderer) ConsoleOption {
	return func(c *consoleConfig) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithConsoleClock replaces time.Now for Time/TimeEnd.
func WithConsoleClock(now func() time.Time) ConsoleOption {
	return func(c *consoleConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConsole returns a Console labeled with name and colored with color.
// color is anything lipgloss.Color accepts: "#6495ed", "69", ... An empty
// color leaves the tag uncolored.
func NewConsole(name, color string, opts ...ConsoleOption) *Console {
	cfg := &consoleConfig{
		output: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.renderer == nil {
		cfg.renderer = lipgloss.NewRenderer(cfg.output)
	}
	if cfg.logger == nil {
		cfg.logger = New(
			WithOutput(cfg.output),
			WithLevel(slog.LevelDebug),
			WithColorFormatter(cfg.renderer.ColorProfile() == termenv.Ascii),
		)
	}

	plain := "[" + name + "]"
	tag := plain
	if color != "" {
		tag = cfg.renderer.NewStyle().Foreground(lipgloss.Color(color)).Render(plain)
	}

	return &Console{
		name:   name,
		color:  color,
		tag:    tag,
		plain:  plain,
		log:    cfg.logger,
		now:    cfg.now,
		timers: make(map[string]time.Time),
	}
}

// NewAutoConsole is NewConsole with the color derived from name.
func NewAutoConsole(name string, opts ...ConsoleOption) *Console {
	return NewConsole(name, ColorFromName(name), opts...)
}

// ColorFromName derives a stable "#rrggbb" color from the bytes of name: the
// first six hex digits of its encoding, right-padded with zeros.
func ColorFromName(name string) string {
	h := hex.EncodeToString([]byte(name))
	if len(h) < 6 {
		h += strings.Repeat("0", 6-len(h))
	}
	return "#" + h[:6]
}

func (c *Console) Name() string  { return c.name }
func (c *Console) Color() string { return c.color }

func (c *Console) Debug(msg string, args ...any) {
	c.emit(context.Background(), slog.LevelDebug, c.tag, msg, args)
}

func (c *Console) Info(msg string, args ...any) {
	c.emit(context.Background(), slog.LevelInfo, c.tag, msg, args)
}

// Log writes at info level.
func (c *Console) Log(msg string, args ...any) {
	c.emit(context.Background(), slog.LevelInfo, c.tag, msg, args)
}

func (c *Console) Warn(msg string, args ...any) {
	c.emit(context.Background(), slog.LevelWarn, c.plain, msg, args)
}

func (c *Console) Error(msg string, args ...any) {
	c.emit(context.Background(), slog.LevelError, c.plain, msg, args)
}

// LogContext writes at the given level, passing ctx to the handler so
// context extractors run. Warn and above use the plain tag.
func (c *Console) LogContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	tag := c.tag
	if level >= slog.LevelWarn {
		tag = c.plain
	}
	c.emit(ctx, level, tag, msg, args)
}

// Time starts a timer under label. Starting a running timer again logs a
// warning and keeps the original start.
func (c *Console) Time(label string) {
	key := c.timerKey(label)

	c.mu.Lock()
	_, running := c.timers[key]
	if !running {
		c.timers[key] = c.now()
	}
	c.mu.Unlock()

	if running {
		c.log.Warn("timer already exists", slog.String("timer", key))
	}
}

// TimeEnd stops the timer under label and logs "[name] label: elapsed".
// It returns the elapsed time, or false when no such timer is running.
func (c *Console) TimeEnd(label string) (time.Duration, bool) {
	key := c.timerKey(label)

	c.mu.Lock()
	start, ok := c.timers[key]
	delete(c.timers, key)
	c.mu.Unlock()

	if !ok {
		c.log.Warn("timer does not exist", slog.String("timer", key))
		return 0, false
	}

	elapsed := c.now().Sub(start)
	c.log.Info(key+": "+elapsed.String(), Duration(elapsed))
	return elapsed, true
}

func (c *Console) timerKey(label string) string {
	return c.plain + " " + label
}

func (c *Console) emit(ctx context.Context, level slog.Level, tag, msg string, args []any) {
	if !c.log.Enabled(ctx, level) {
		return
	}
	c.log.Log(ctx, level, tag+" "+msg, args...)
}
