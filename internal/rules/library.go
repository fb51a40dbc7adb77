package rules

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RuleSet is a named rule set with the options it is applied with.
type RuleSet struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Rules        string `yaml:"rules"`
	WholeWords   bool   `yaml:"wholeWords"`
	PreserveCase bool   `yaml:"preserveCase"`
}

// Options returns the options r is applied with.
func (r RuleSet) Options(log bool) Options {
	return Options{WholeWords: r.WholeWords, PreserveCase: r.PreserveCase, Log: log}
}

// Library is a collection of named rule sets, typically read from YAML:
//
//	sets:
//	  - name: fillers
//	    wholeWords: true
//	    rules: |
//	      "ähm"->""x
//	      "sozusagen"->""x
type Library struct {
	Sets []RuleSet `yaml:"sets"`

	engine *Engine
	byName map[string]int
}

// NewLibrary creates a library from rule sets.
// Names must be unique and non-empty.
func NewLibrary(sets ...RuleSet) (*Library, error) {
	lib := &Library{Sets: sets}
	if err := lib.index(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadLibrary reads a YAML rule set library from r.
func LoadLibrary(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rule library: %w", err)
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing rule library: %w", err)
	}
	if err := lib.index(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// LoadLibraryFile reads a YAML rule set library from path.
func LoadLibraryFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lib, err := LoadLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// index validates names and builds the name lookup.
func (l *Library) index() error {
	l.byName = make(map[string]int, len(l.Sets))
	for i, set := range l.Sets {
		if set.Name == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptyRuleSetName, i)
		}
		if _, dup := l.byName[set.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRuleSet, set.Name)
		}
		l.byName[set.Name] = i
	}
	l.engine = NewEngine(len(l.Sets) * 2)
	return nil
}

// Lookup returns the rule set called name.
func (l *Library) Lookup(name string) (RuleSet, error) {
	i, ok := l.byName[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return l.Sets[i], nil
}

// Names returns the rule set names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.byName))
	for name := range l.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply applies the rule set called name to subject.
func (l *Library) Apply(name, subject string, log bool) (Result, error) {
	set, err := l.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	return l.engine.Apply(subject, set.Rules, set.Options(log)), nil
}
