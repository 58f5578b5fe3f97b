// Package interactive provides an interactive editor for a representation
// document.
package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/inspect"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// Shell edits one representation tree.
type Shell struct {
	codec     *wire.Codec
	formatter *inspect.Formatter
	rep       *model.Representation
	path      string
	format    wire.Format
	dirty     bool
	out       io.Writer
	rl        *readline.Instance
}

// New creates a shell over r, read from path in format f. The shell takes a
// reference to r and releases it on Close.
func New(codec *wire.Codec, r *model.Representation, path string, f wire.Format) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "repr> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(codec, r, path, f, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(codec *wire.Codec, r *model.Representation, path string, f wire.Format, out io.Writer) *Shell {
	return &Shell{
		codec:     codec,
		formatter: inspect.NewFormatter(),
		rep:       r.Ref(),
		path:      path,
		format:    f,
		out:       out,
	}
}

// Close releases the tree and the terminal.
func (s *Shell) Close() error {
	if s.rep != nil {
		s.rep.Free()
		s.rep = nil
	}
	if s.rl != nil {
		return s.rl.Close()
	}
	return nil
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) {
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
		if s.exec(line) {
			return
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *Shell) exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	var err error
	switch strings.ToLower(cmd) {
	case "help", "?":
		s.printHelp()
	case "view", "v":
		err = s.cmdView(args)
	case "get", "g":
		err = s.cmdGet(args)
	case "set", "s":
		err = s.cmdSet(rest)
	case "delete", "del":
		err = s.cmdDelete(args)
	case "uri":
		s.cmdURI(args)
	case "types":
		s.formatter.ShowTypes = !s.formatter.ShowTypes
		fmt.Fprintf(s.out, "Show types: %v\n", s.formatter.ShowTypes)
	case "encode", "e":
		err = s.cmdEncode(args)
	case "save":
		err = s.cmdSave(args)
	case "quit", "exit", "q":
		if s.dirty {
			fmt.Fprintln(s.out, "Unsaved changes discarded.")
		}
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Representation Commands:
  Inspection:
    view [path]          - Print the tree (or the subtree at path)
    get <path>           - Print the value at path
    types                - Toggle value types in output
    encode [text|binary] - Print the encoded document

  Editing:
    set <key> <value>    - Set an attribute (value in text form, e.g. 60, "on", [1,2])
    delete <key>         - Delete an attribute
    uri [uri]            - Show or set the URI
    save [file] [format] - Write the document (default: the input file and format)

  General:
    help                 - Show this help
    quit                 - Exit`)
}

func (s *Shell) resolve(path string) (inspect.Target, error) {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return inspect.Target{}, err
	}
	return inspect.Resolve(s.rep, p)
}

func (s *Shell) cmdView(args []string) error {
	if len(args) == 0 {
		s.formatter.WriteTree(s.out, s.rep)
		return nil
	}
	target, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if target.Representation != nil {
		s.formatter.WriteTree(s.out, target.Representation)
		return nil
	}
	if obj, err := target.Value.Object(); err == nil {
		s.formatter.WriteTree(s.out, obj)
		return nil
	}
	fmt.Fprintln(s.out, s.formatter.FormatValue(target.Value))
	return nil
}

func (s *Shell) cmdGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <path>")
	}
	target, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if target.Representation != nil {
		fmt.Fprintln(s.out, s.formatter.FormatHeader(target.Representation))
		return nil
	}
	fmt.Fprintln(s.out, s.formatter.FormatValue(target.Value))
	return nil
}

func (s *Shell) cmdSet(rest string) error {
	key, raw, ok := strings.Cut(rest, " ")
	raw = strings.TrimSpace(raw)
	if !ok || key == "" || raw == "" {
		return fmt.Errorf("usage: set <key> <value>")
	}
	if wire.IsReservedKey(key) {
		return fmt.Errorf("%w: %q is reserved", model.ErrInvalidParameter, key)
	}
	v, err := wire.DecodeTextValue([]byte(raw))
	if err != nil {
		return err
	}
	if err := s.rep.Set(key, v); err != nil {
		v.Free()
		return err
	}
	s.dirty = true
	fmt.Fprintf(s.out, "%s = %s\n", key, s.formatter.FormatValue(v))
	return nil
}

func (s *Shell) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <key>")
	}
	typ, err := s.rep.TypeOf(args[0])
	if err != nil {
		return err
	}
	if err := s.rep.Delete(args[0], typ); err != nil {
		return err
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Deleted %s\n", args[0])
	return nil
}

func (s *Shell) cmdURI(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.rep.URI())
		return
	}
	s.rep.SetURI(args[0])
	s.dirty = true
}

func (s *Shell) cmdEncode(args []string) error {
	f := wire.FormatText
	if len(args) > 0 {
		var err error
		if f, err = wire.ParseFormat(args[0]); err != nil {
			return err
		}
	}
	data, err := s.codec.Encode(s.rep, f)
	if err != nil {
		return err
	}
	if f == wire.FormatBinary {
		fmt.Fprintf(s.out, "%d bytes: %x\n", len(data), data)
		return nil
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *Shell) cmdSave(args []string) error {
	path := s.path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("usage: save <file> [format]")
	}
	f := s.format
	if len(args) > 1 {
		var err error
		if f, err = wire.ParseFormat(args[1]); err != nil {
			return err
		}
	}
	data, err := s.codec.Encode(s.rep, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.dirty = false
	fmt.Fprintf(s.out, "Saved %d bytes to %s\n", len(data), path)
	return nil
}
