package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

func TestFromContext_RoundTrip(t *testing.T) {
	l := NewLogger("test")
	ctx := l.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
	require.Equal(t, l.GetLevel(), got.GetLevel())
}

func TestFromContext_NoLoggerAttached(t *testing.T) {
	got := FromContext(context.Background())
	require.NotNil(t, got)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotPanics(t, func() {
		l.Info().Str("key", "value").Msg("should go nowhere")
	})
}

func TestGetChildLogger_Independent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
}
