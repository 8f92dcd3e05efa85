package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]struct {
	icon  string
	color lipgloss.AdaptiveColor
}{
	log.ErrorLevel: {"✖", lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}},
	log.WarnLevel:  {"!", lipgloss.AdaptiveColor{Light: "#C77700", Dark: "#F7B32B"}},
	log.InfoLevel:  {"•", lipgloss.AdaptiveColor{Light: "#1B7F5A", Dark: "#3DDC97"}},
	log.DebugLevel: {"·", lipgloss.AdaptiveColor{Light: "#5C4B8A", Dark: "#9C89D9"}},
}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, c := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(c.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(c.color)
	}
	keyColor := levelColors[log.DebugLevel].color
	for _, k := range []string{"context", "userID", "error", "prefix"} {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel].color)
	return styles
}

// NewLogger builds the charmbracelet handler described by cfg behind a
// slog.Logger. The text formatter is styled; json output is plain.
func NewLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	if formatter == log.TextFormatter {
		handler.SetStyles(loggerStyles())
	}
	return slog.New(handler)
}

func setupLogger(cfg *config.Log) *slog.Logger {
	logger := NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}
