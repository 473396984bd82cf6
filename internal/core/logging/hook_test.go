package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "session and source",
			setupCtx: func() context.Context {
				ctx := WithSessionID(context.Background(), "sess-123")
				return WithSource(ctx, "console.cap")
			},
			wantKeys: []string{"session_id", "source"},
		},
		{
			name: "only session_id",
			setupCtx: func() context.Context {
				return WithSessionID(context.Background(), "sess-123")
			},
			wantKeys:  []string{"session_id"},
			wantEmpty: []string{"source"},
		},
		{
			name: "only source",
			setupCtx: func() context.Context {
				return WithSource(context.Background(), "dmesg -w")
			},
			wantKeys:  []string{"source"},
			wantEmpty: []string{"session_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"session_id", "source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := entry[key]; !ok {
					t.Errorf("expected %s to be present in log", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := entry[key]; ok {
					t.Errorf("expected %s to be absent from log", key)
				}
			}
		})
	}
}
