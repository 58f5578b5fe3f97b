package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes codec events at Debug level and error events at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("codec_id", event.CodecID),
		slog.String("direction", event.Direction.String()),
		slog.String("format", event.Format.String()),
		slog.String("category", event.Category.String()),
	}
	level := slog.LevelDebug

	switch {
	case event.Codec != nil:
		attrs = append(attrs,
			slog.Int("size", event.Codec.Size),
			slog.Int("attributes", event.Codec.Attributes),
			slog.Int("children", event.Codec.Children),
			slog.Duration("duration", event.Codec.Duration),
		)
		if event.Codec.URI != "" {
			attrs = append(attrs, slog.String("uri", event.Codec.URI))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
		if event.Error.Size > 0 {
			attrs = append(attrs, slog.Int("size", event.Error.Size))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "codec", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
