// Command iotcon-repr converts, inspects, and validates resource
// representation documents.
//
// Documents are either text (nested-object JSON) or binary (CBOR-encoded
// native payload). The input format is detected unless --from is given.
//
// Usage:
//
//	iotcon-repr <command> [flags] <file>
//
// Commands:
//
//	convert   Convert a document between text and binary
//	view      Print the representation tree
//	get       Print the value at a path
//	validate  Check that a document survives both formats
//	shell     Edit a document interactively
//	log       View codec event logs (log view, log stats)
//
// Examples:
//
//	# Convert text to binary
//	iotcon-repr convert --to binary -o light.cbor light.json
//
//	# Show the tree with value types
//	iotcon-repr view --types light.cbor
//
//	# Read a nested value
//	iotcon-repr get light.json '#0/owner/id'
//
//	# Record codec events and view the errors
//	iotcon-repr validate --event-log codec.rlog light.json
//	iotcon-repr log view --category error codec.rlog
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/cmd/iotcon-repr/commands"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/cmd/iotcon-repr/interactive"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/config"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/log"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

const usage = `iotcon-repr - Resource Representation Tool

Usage:
  iotcon-repr <command> [flags] <file>

Commands:
  convert   Convert a document between text and binary
  view      Print the representation tree
  get       Print the value at a path
  validate  Check that a document survives both formats
  shell     Edit a document interactively
  log       View codec event logs (log view, log stats)

Use "iotcon-repr <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "convert":
		err = runConvert(args)
	case "view":
		err = runView(args)
	case "get":
		err = runGet(args)
	case "validate":
		err = runValidate(args)
	case "shell":
		err = runShell(args)
	case "log":
		err = runLog(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env carries what every representation command needs.
type env struct {
	cfg    *config.Config
	codec  *wire.Codec
	input  commands.Input
	logger *slog.Logger
	close  func() error
}

// codecFlags are the flags shared by the representation commands.
type codecFlags struct {
	configPath string
	from       string
	eventLog   string
	pretty     bool
	comments   bool
}

func newFlagSet(name, summary, argsUsage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "iotcon-repr %s - %s\n\nUsage:\n  iotcon-repr %s [flags] %s\n\nFlags:\n",
			name, summary, name, argsUsage)
		fs.PrintDefaults()
	}
	return fs
}

func (cf *codecFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&cf.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&cf.from, "from", "auto", "Input format (text, binary, auto)")
	fs.StringVar(&cf.eventLog, "event-log", "", "Append codec events to this file")
	fs.BoolVar(&cf.pretty, "pretty", false, "Indent text output")
	fs.BoolVar(&cf.comments, "allow-comments", false, "Accept comments and trailing commas in text input")
}

// setup loads the configuration, applies flag overrides, and builds the
// codec for path.
func (cf *codecFlags) setup(fs *pflag.FlagSet, path string) (*env, error) {
	cfg := config.Default()
	if cf.configPath != "" {
		var err error
		if cfg, err = config.Load(cf.configPath); err != nil {
			return nil, err
		}
	}
	if fs.Changed("pretty") {
		cfg.Codec.Pretty = cf.pretty
	}
	if fs.Changed("allow-comments") {
		cfg.Codec.AllowComments = cf.comments
	}
	if cf.eventLog != "" {
		cfg.Log.File = cf.eventLog
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	events, closeFn, err := cfg.Loggers(logger)
	if err != nil {
		return nil, err
	}

	in := commands.Input{Path: path}
	if in.Format, in.Explicit, err = commands.ParseFormatFlag(cf.from); err != nil {
		_ = closeFn()
		return nil, err
	}

	opts := append(cfg.CodecOptions(), wire.WithLogger(events))
	codec := wire.NewCodec(opts...)
	logger.Debug("codec ready", "codec_id", codec.ID(), "input", path, "event_log", cfg.Log.File)

	return &env{cfg: cfg, codec: codec, input: in, logger: logger, close: closeFn}, nil
}

func parseArgs(fs *pflag.FlagSet, args []string, want int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < want {
		fs.Usage()
		return fmt.Errorf("expected %d argument(s), got %d", want, fs.NArg())
	}
	return nil
}

func runConvert(args []string) error {
	fs := newFlagSet("convert", "Convert a document between text and binary", "<file>")
	var cf codecFlags
	cf.register(fs)
	to := fs.String("to", "", "Output format (text, binary); default from config")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")

	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	e, err := cf.setup(fs, fs.Arg(0))
	if err != nil {
		return err
	}
	defer e.close()

	target, err := e.cfg.Format()
	if *to != "" {
		target, err = wire.ParseFormat(*to)
	}
	if err != nil {
		return err
	}
	return commands.RunConvert(e.codec, commands.ConvertOptions{
		Input:  e.input,
		To:     target,
		Output: *output,
	}, os.Stdout)
}

func runView(args []string) error {
	fs := newFlagSet("view", "Print the representation tree", "<file>")
	var cf codecFlags
	cf.register(fs)
	types := fs.Bool("types", false, "Show value types")
	maxItems := fs.Int("max-items", 0, "Maximum list elements shown (0 = all)")

	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	e, err := cf.setup(fs, fs.Arg(0))
	if err != nil {
		return err
	}
	defer e.close()

	return commands.RunView(e.codec, commands.ViewOptions{
		Input:        e.input,
		ShowTypes:    *types,
		MaxListItems: *maxItems,
	}, os.Stdout)
}

func runGet(args []string) error {
	fs := newFlagSet("get", "Print the value at a path", "<file> <path>")
	var cf codecFlags
	cf.register(fs)

	if err := parseArgs(fs, args, 2); err != nil {
		return err
	}
	e, err := cf.setup(fs, fs.Arg(0))
	if err != nil {
		return err
	}
	defer e.close()

	return commands.RunGet(e.codec, e.input, fs.Arg(1), os.Stdout)
}

func runValidate(args []string) error {
	fs := newFlagSet("validate", "Check that a document survives both formats", "<file>")
	var cf codecFlags
	cf.register(fs)

	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	e, err := cf.setup(fs, fs.Arg(0))
	if err != nil {
		return err
	}
	defer e.close()

	report, err := commands.RunValidate(e.codec, e.input, os.Stdout)
	if err != nil {
		return err
	}
	e.logger.Debug("validated", "representations", report.Representations, "max_depth", report.MaxDepth)
	return nil
}

func runShell(args []string) error {
	fs := newFlagSet("shell", "Edit a document interactively", "<file>")
	var cf codecFlags
	cf.register(fs)

	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	e, err := cf.setup(fs, fs.Arg(0))
	if err != nil {
		return err
	}
	defer e.close()

	r, f, err := commands.Load(e.codec, e.input)
	if err != nil {
		return err
	}
	sh, err := interactive.New(e.codec, r, fs.Arg(0), f)
	r.Free()
	if err != nil {
		return err
	}
	defer sh.Close()

	sh.Run(context.Background())
	return nil
}

func runLog(args []string) error {
	if len(args) < 1 {
		return errors.New("log: expected subcommand (view, stats)")
	}
	switch args[0] {
	case "view":
		return runLogView(args[1:])
	case "stats":
		fs := newFlagSet("log stats", "Show statistics about a codec log", "<file.rlog>")
		if err := parseArgs(fs, args[1:], 1); err != nil {
			return err
		}
		return commands.RunLogStats(fs.Arg(0), os.Stdout)
	default:
		return fmt.Errorf("log: unknown subcommand %q (must be view or stats)", args[0])
	}
}

func runLogView(args []string) error {
	fs := newFlagSet("log view", "View a codec log in human-readable format", "<file.rlog>")
	codecID := fs.String("codec-id", "", "Filter by codec ID")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (codec, error)")
	format := fs.String("format", "", "Filter by format (text, binary)")
	uri := fs.String("uri", "", "Filter by root URI")

	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}

	filter := log.Filter{CodecID: *codecID, URI: *uri}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	if *format != "" {
		f, err := wire.ParseFormat(*format)
		if err != nil {
			return err
		}
		filter.Format = &f
	}

	return commands.RunLogView(fs.Arg(0), filter, os.Stdout)
}
