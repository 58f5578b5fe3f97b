// Package log records codec events for representation traffic.
//
// Every encode and decode performed through a wire.Codec can be reported to
// a Logger as an Event. This is separate from operational logging (slog):
// the event trace is machine-readable and can be replayed or filtered later.
//
// # Basic Usage
//
//	// Development: print events through slog
//	codec := wire.NewCodec(wire.WithLogger(log.NewSlogAdapter(slog.Default())))
//
//	// Production: append events to a CBOR file
//	fl, _ := log.NewFileLogger("/var/log/iotcon/codec.rlog")
//	codec := wire.NewCodec(wire.WithLogger(fl))
//
//	// Both
//	codec := wire.NewCodec(wire.WithLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()), fl)))
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, read back
// with Reader. The iotcon-repr CLI prints them with "log view".
package log
