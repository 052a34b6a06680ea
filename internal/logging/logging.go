// Package logging wires up the process-wide structured logger. Every other
// package takes a zerolog.Logger value rather than reaching for a global,
// but main() builds exactly one of these.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
)

// New builds the process logger. Pretty-printed console output in
// development (isatty-friendly), compact JSON otherwise — out is normally
// os.Stderr but tests can pass a buffer.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	writer := out
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ActorEventHandler adapts a zerolog.Logger to actor.EventHandler so the
// engine can report recovered panics and dropped messages without any
// actor package depending on zerolog directly.
type ActorEventHandler struct {
	Log zerolog.Logger
}

func (h ActorEventHandler) ActorPanic(pid *actor.PID, reason interface{}) {
	h.Log.Error().
		Str("actor", pid.String()).
		Interface("reason", reason).
		Msg("actor panic recovered")
}

func (h ActorEventHandler) MessageDropped(pid *actor.PID, msg interface{}) {
	h.Log.Warn().
		Str("actor", pid.String()).
		Type("message_type", msg).
		Msg("mailbox full, message dropped")
}
