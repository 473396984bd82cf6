package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies session_id and source from an event's context onto the event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if sessionID := GetSessionID(ctx); sessionID != "" {
		e.Str("session_id", sessionID)
	}

	if source := GetSource(ctx); source != "" {
		e.Str("source", source)
	}
}
