package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/scratchpad/internal/config/loader"
	"github.com/dshills/scratchpad/internal/dictation"
	"github.com/dshills/scratchpad/internal/note"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SCRATCHPAD_"

// Config holds the resolved scratchpad settings.
type Config struct {
	// Delimiter separates notes in a buffer.
	Delimiter string
	// ClozePrefix and ClozeSuffix wrap text cut from a note.
	ClozePrefix string
	ClozeSuffix string

	// RulesFile is the replace rule set applied by default.
	RulesFile string
	// LibraryFile is a YAML library of named rule sets.
	LibraryFile string
	// WholeWords, PreserveCase and Log are the options RulesFile is applied with.
	WholeWords   bool
	PreserveCase bool
	Log          bool

	// LogLevel is the minimum level of diagnostic output.
	LogLevel string

	// MaxPromptChars limits the transcription prompt.
	MaxPromptChars int
	// InsertMode is where transcripts are placed, see dictation.ParseMode.
	InsertMode string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Delimiter:      note.DefaultDelimiter,
		ClozePrefix:    note.ClozePrefix,
		ClozeSuffix:    note.ClozeSuffix,
		LogLevel:       "info",
		MaxPromptChars: dictation.MaxPromptChars,
		InsertMode:     dictation.InsertAtCursor.String(),
	}
}

// defaultConfig returns the default settings as a configuration map.
func defaultConfig() map[string]any {
	d := Default()
	return map[string]any{
		"note": map[string]any{
			"delimiter":   d.Delimiter,
			"clozePrefix": d.ClozePrefix,
			"clozeSuffix": d.ClozeSuffix,
		},
		"rules": map[string]any{
			"file":         d.RulesFile,
			"library":      d.LibraryFile,
			"wholeWords":   d.WholeWords,
			"preserveCase": d.PreserveCase,
			"log":          d.Log,
		},
		"logging": map[string]any{
			"level": d.LogLevel,
		},
		"dictation": map[string]any{
			"maxPromptChars": int64(d.MaxPromptChars),
			"mode":           d.InsertMode,
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs       loader.FileSystem
	path     string
	required bool
	env      loader.Loader
}

// WithFile reads settings from path. The file must exist.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
		o.required = true
	}
}

// WithOptionalFile reads settings from path if the file exists.
func WithOptionalFile(path string) Option {
	return func(o *options) {
		o.path = path
		o.required = false
	}
}

// WithFS sets the file system config files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnv sets the environment loader. Pass nil to ignore the environment.
func WithEnv(env loader.Loader) Option {
	return func(o *options) {
		o.env = env
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scratchpad", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scratchpad", "config.toml")
}

// Load merges defaults, the config file and the environment, and validates
// the result.
func Load(opts ...Option) (Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultConfig()

	if o.path != "" {
		file, err := loader.NewTOMLLoaderWithFS(o.fs, o.path).Load()
		if err != nil {
			return Config{}, err
		}
		if file == nil && o.required {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
		}
		merged = loader.DeepMerge(merged, file)
	}

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap decodes a configuration map. Missing settings keep their defaults.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	d := decoder{m: m}

	d.str("note.delimiter", &cfg.Delimiter)
	d.str("note.clozePrefix", &cfg.ClozePrefix)
	d.str("note.clozeSuffix", &cfg.ClozeSuffix)
	d.str("rules.file", &cfg.RulesFile)
	d.str("rules.library", &cfg.LibraryFile)
	d.boolean("rules.wholeWords", &cfg.WholeWords)
	d.boolean("rules.preserveCase", &cfg.PreserveCase)
	d.boolean("rules.log", &cfg.Log)
	d.str("logging.level", &cfg.LogLevel)
	d.integer("dictation.maxPromptChars", &cfg.MaxPromptChars)
	d.str("dictation.mode", &cfg.InsertMode)

	return cfg, errors.Join(d.errs...)
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.Delimiter == "" {
		errs = append(errs, &ValidationError{Path: "note.delimiter", Message: note.ErrEmptyDelimiter.Error(), Value: c.Delimiter})
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown log level", Value: c.LogLevel})
	}
	if c.MaxPromptChars < 0 {
		errs = append(errs, &ValidationError{Path: "dictation.maxPromptChars", Message: "must not be negative", Value: c.MaxPromptChars})
	}
	if _, err := dictation.ParseMode(c.InsertMode); err != nil {
		errs = append(errs, &ValidationError{Path: "dictation.mode", Message: err.Error(), Value: c.InsertMode})
	}
	return errors.Join(errs...)
}

// Mode returns the parsed insert mode.
func (c Config) Mode() dictation.Mode {
	m, _ := dictation.ParseMode(c.InsertMode)
	return m
}

// decoder copies typed values out of a configuration map and collects type
// errors.
type decoder struct {
	m    map[string]any
	errs []error
}

func (d *decoder) str(path string, dst *string) {
	v, ok := getPath(d.m, path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.errs = append(d.errs, &TypeError{Path: path, Expected: "string", Actual: typeName(v)})
		return
	}
	*dst = s
}

func (d *decoder) boolean(path string, dst *bool) {
	v, ok := getPath(d.m, path)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		d.errs = append(d.errs, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)})
		return
	}
	*dst = b
}

func (d *decoder) integer(path string, dst *int) {
	v, ok := getPath(d.m, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case int:
		*dst = val
	case int64:
		*dst = int(val)
	default:
		d.errs = append(d.errs, &TypeError{Path: path, Expected: "int", Actual: typeName(v)})
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	current := any(m)
	for _, part := range strings.Split(path, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
