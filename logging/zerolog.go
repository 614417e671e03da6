package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Zerolog implements Logger on top of a zerolog.Logger.
type Zerolog struct {
	logger zerolog.Logger
}

var _ Logger = &Zerolog{}

// New creates a console logger on stderr whose level follows the given run
// mode.
func New(mode Flag) *Zerolog {
	return NewWriter(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}, mode)
}

// NewWriter creates a logger which writes JSON lines to w.
func NewWriter(w io.Writer, mode Flag) *Zerolog {
	logger := zerolog.New(w).Level(mode.Level()).With().Timestamp().Logger()
	return &Zerolog{logger: logger}
}

func (z *Zerolog) Debug(msg string, fields ...Field) {
	write(z.logger.Debug(), msg, fields)
}

func (z *Zerolog) Info(msg string, fields ...Field) {
	write(z.logger.Info(), msg, fields)
}

func (z *Zerolog) Warn(msg string, fields ...Field) {
	write(z.logger.Warn(), msg, fields)
}

func (z *Zerolog) Error(msg string, fields ...Field) {
	write(z.logger.Error(), msg, fields)
}

func write(event *zerolog.Event, msg string, fields []Field) {
	if event == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	event.Msg(msg)
}
