package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/log"
)

// Stats holds aggregate statistics about a codec log file.
type Stats struct {
	TotalEvents       int
	EventsByFormat    map[log.Format]int
	EventsByDirection map[log.Direction]int
	Codecs            map[string]*CodecStats
	Errors            int
	Bytes             int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// CodecStats holds statistics for a single codec instance.
type CodecStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Errors    int
	Busy      time.Duration
}

// CollectStats reads every event of the log file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByFormat:    make(map[log.Format]int),
		EventsByDirection: make(map[log.Direction]int),
		Codecs:            make(map[string]*CodecStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByFormat[event.Format]++
		stats.EventsByDirection[event.Direction]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		cs, ok := stats.Codecs[event.CodecID]
		if !ok {
			cs = &CodecStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Codecs[event.CodecID] = cs
		}
		cs.Events++
		if event.Timestamp.After(cs.LastSeen) {
			cs.LastSeen = event.Timestamp
		}

		switch {
		case event.Codec != nil:
			stats.Bytes += event.Codec.Size
			cs.Busy += event.Codec.Duration
		case event.Error != nil:
			stats.Errors++
			cs.Errors++
		}
	}
	return stats, nil
}

// RunLogStats analyzes the log file and prints statistics.
func RunLogStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Codec Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Total Bytes:  %d\n", stats.Bytes)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Format:")
	for _, f := range []log.Format{log.FormatText, log.FormatBinary} {
		if count := stats.EventsByFormat[f]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", f.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Codecs: %d\n", len(stats.Codecs))
	if len(stats.Codecs) > 0 {
		type codecInfo struct {
			id    string
			stats *CodecStats
		}
		codecs := make([]codecInfo, 0, len(stats.Codecs))
		for id, cs := range stats.Codecs {
			codecs = append(codecs, codecInfo{id, cs})
		}
		sort.Slice(codecs, func(i, j int) bool {
			return codecs[i].stats.FirstSeen.Before(codecs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range codecs {
			fmt.Fprintf(w, "  [%s] %d events, %d errors, busy %s\n",
				shortenCodecID(c.id), c.stats.Events, c.stats.Errors, formatDuration(c.stats.Busy))
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
