package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologAdapter backs Logger with rs/zerolog. Every event carries a
// component field naming the pipeline stage that emitted it.
type zerologAdapter struct {
	z zerolog.Logger
}

var _ Logger = (*zerologAdapter)(nil)

// NewZerologLogger creates a Logger writing JSON to stdout, or
// human-readable console output when APP_ENV is dev.
func NewZerologLogger(component string) Logger {
	out := io.Writer(os.Stdout)
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return newZerologAdapter(component, out)
}

func newZerologAdapter(component string, out io.Writer) *zerologAdapter {
	z := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	return &zerologAdapter{z: z}
}

func (l *zerologAdapter) Debugf(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Debugw(msg string, fields map[string]any) {
	l.z.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Infof(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}
