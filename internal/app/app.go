// Package app wires configuration, logging and the scratchpad packages into
// the command line application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/scratchpad/internal/config"
	"github.com/dshills/scratchpad/internal/note"
	"github.com/dshills/scratchpad/internal/rules"
)

// Application holds the resolved configuration and the components shared by
// all commands.
type Application struct {
	cfg      config.Config
	logger   *Logger
	searcher *note.Searcher
	engine   *rules.Engine

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. When empty the
	// default location is used if the file exists.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Delimiter overrides the configured note delimiter when set.
	// Backslash escapes such as \n are interpreted.
	Delimiter string

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ConfigOptions are passed to config.Load after the file option.
	ConfigOptions []config.Option
}

// New loads the configuration and creates an Application.
func New(opts Options) (*Application, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	fileOpt := config.WithOptionalFile(config.DefaultPath())
	if opts.ConfigPath != "" {
		fileOpt = config.WithFile(opts.ConfigPath)
	}
	cfg, err := config.Load(append([]config.Option{fileOpt}, opts.ConfigOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Delimiter != "" {
		d, err := unescape(opts.Delimiter)
		if err != nil {
			return nil, usageError("delimiter %q: %v", opts.Delimiter, err)
		}
		cfg.Delimiter = d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	searcher, err := note.NewSearcher(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.LogLevel),
		Output: opts.Stderr,
		Prefix: "scratchpad",
	})

	return &Application{
		cfg:      cfg,
		logger:   logger,
		searcher: searcher,
		engine:   rules.NewEngine(0),
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}, nil
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Run executes the command named by args[0] with the remaining arguments.
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		Usage(app.stderr)
		return usageError("no command given")
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	app.logger.Debug("running %s", cmd.name)
	err := cmd.run(ctx, app, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// Usage writes the list of commands to w.
func Usage(w io.Writer) {
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", cmd.name, cmd.summary)
	}
}

// flagSet creates the flag set for a command.
func (app *Application) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(app.stderr)
	return fs
}

// readFile reads a whole file, or stdin when path is empty or "-".
func (app *Application) readFile(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(app.stdin)
		if err != nil {
			return "", NewOperationError("read", "stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewOperationError("read", path, err)
	}
	return string(data), nil
}

// writeFile writes text to path, or stdout when path is empty or "-".
func (app *Application) writeFile(path, text string) error {
	if path == "" || path == "-" {
		if _, err := io.WriteString(app.stdout, text); err != nil {
			return NewOperationError("write", "stdout", err)
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return NewOperationError("write", path, err)
	}
	return nil
}

// unescape interprets Go backslash escapes in s.
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	return strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
}
