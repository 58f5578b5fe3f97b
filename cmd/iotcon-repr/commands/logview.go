package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [codec:id] DIRECTION FORMAT Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	typeLabel := "Unknown"
	switch {
	case event.Codec != nil && event.Direction == log.DirectionOut:
		typeLabel = "Encode"
	case event.Codec != nil:
		typeLabel = "Decode"
	case event.Error != nil:
		typeLabel = "Error"
	}

	fmt.Fprintf(w, "%s [codec:%s] %-3s %s %s\n", ts, shortenCodecID(event.CodecID),
		event.Direction, event.Format, typeLabel)

	switch {
	case event.Codec != nil:
		formatCodecDetails(w, event.Codec)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenCodecID returns the first 8 characters of the codec ID.
func shortenCodecID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatCodecDetails(w io.Writer, ev *log.CodecEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", ev.Size)
	if ev.URI != "" {
		fmt.Fprintf(w, "  URI: %s\n", ev.URI)
	}
	fmt.Fprintf(w, "  Attributes: %d  Children: %d\n", ev.Attributes, ev.Children)
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(ev.Duration))
	if len(ev.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(ev.Data))
		if ev.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
	if err.Size > 0 {
		fmt.Fprintf(w, "  Size: %d bytes\n", err.Size)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseDirectionFlag parses a direction string (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in", "decode":
		return log.DirectionIn, nil
	case "out", "encode":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "codec":
		return log.CategoryCodec, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be codec or error)", s)
	}
}

// RunLogView prints the events of a codec log file that match filter.
func RunLogView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}
