package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dshills/scratchpad/internal/dictation"
	"github.com/dshills/scratchpad/internal/rules"
	"github.com/dshills/scratchpad/internal/transform"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// command is a CLI subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, app *Application, args []string) error
}

var commands = []command{
	{"note", "print the note around the cursor", runNote},
	{"delete", "delete the note around the cursor", runDelete},
	{"select", "print the byte range of the note around the cursor", runSelect},
	{"cut", "cut the note around the cursor as a cloze", runCut},
	{"notes", "list all notes", runNotes},
	{"new", "start a new note at the end of the buffer", runNew},
	{"apply", "apply a replace rule set", runApply},
	{"du2ich", "rewrite German second person as first person", runDu2Ich},
	{"highlights", "extract ==highlighted== text", runHighlights},
	{"rule", "build a replace rule from text", runRule},
	{"check", "self-check and lint a rule set", runCheck},
	{"lint", "report malformed and invalid rules", runLint},
	{"sets", "list the rule sets of a library", runSets},
	{"prompt", "print the transcription prompt for the cursor", runPrompt},
	{"insert", "place a transcript in the buffer", runInsert},
	{"watch", "re-apply a rule set whenever it or the input changes", runWatch},
}

func lookupCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// bufferFlags are the flags of commands working on a buffer.
type bufferFlags struct {
	in     string
	out    string
	cursor int
}

func (b *bufferFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&b.in, "in", "", "read the buffer from `file` instead of stdin")
	fs.StringVar(&b.out, "out", "", "write the result to `file` instead of stdout")
	fs.IntVar(&b.cursor, "cursor", -1, "cursor byte `offset`, negative for the end of the buffer")
}

// read returns the buffer and the cursor clamped to it.
func (b *bufferFlags) read(app *Application) (string, int, error) {
	text, err := app.readFile(b.in)
	if err != nil {
		return "", 0, err
	}
	cursor := b.cursor
	if cursor < 0 || cursor > len(text) {
		cursor = len(text)
	}
	return text, cursor, nil
}

// ruleFlags are the flags selecting a rule set and its options.
type ruleFlags struct {
	file         string
	library      string
	set          string
	wholeWords   bool
	preserveCase bool
	log          bool
}

func (r *ruleFlags) register(app *Application, fs *flag.FlagSet) {
	fs.StringVar(&r.file, "rules", app.cfg.RulesFile, "rule set `file`")
	fs.StringVar(&r.library, "library", app.cfg.LibraryFile, "rule set library `file` (YAML)")
	fs.StringVar(&r.set, "set", "", "use the library rule set called `name` instead of -rules")
	fs.BoolVar(&r.wholeWords, "whole-words", app.cfg.WholeWords, "only replace whole words")
	fs.BoolVar(&r.preserveCase, "preserve-case", app.cfg.PreserveCase, "also apply rules with a capitalized first letter")
	fs.BoolVar(&r.log, "log", app.cfg.Log, "print the rules that matched to stderr")
}

// load returns the rule set text and the options to apply it with.
func (r *ruleFlags) load(app *Application) (string, rules.Options, error) {
	if r.set != "" {
		lib, err := app.loadLibrary(r.library)
		if err != nil {
			return "", rules.Options{}, err
		}
		rs, err := lib.Lookup(r.set)
		if err != nil {
			return "", rules.Options{}, err
		}
		opts := rs.Options(r.log)
		opts.Diagnostics = true
		return rs.Rules, opts, nil
	}

	if r.file == "" {
		return "", rules.Options{}, ErrNoRules
	}
	text, err := app.readFile(r.file)
	if err != nil {
		return "", rules.Options{}, err
	}
	return text, rules.Options{
		WholeWords:   r.wholeWords,
		PreserveCase: r.preserveCase,
		Log:          r.log,
		Diagnostics:  true,
	}, nil
}

func (app *Application) loadLibrary(path string) (*rules.Library, error) {
	if path == "" {
		return nil, usageError("no rule set library configured")
	}
	lib, err := rules.LoadLibraryFile(path)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	return lib, nil
}

// report logs skipped rules and writes the rule log to stderr.
func (app *Application) report(res rules.Result) {
	for _, d := range res.Diagnostics {
		app.logger.Warn("skipped %v", d)
	}
	if res.Log != "" {
		fmt.Fprint(app.stderr, res.Log)
	}
}

func runNote(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("note")
	var b bufferFlags
	b.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}
	return app.writeFile(b.out, app.searcher.Current(text, cursor).Text)
}

func runDelete(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("delete")
	var b bufferFlags
	b.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}
	out, newCursor := app.searcher.Delete(text, cursor)
	app.logger.Debug("deleted note, cursor %d", newCursor)
	return app.writeFile(b.out, out)
}

func runSelect(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("select")
	var b bufferFlags
	b.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}
	r := app.searcher.Selection(text, cursor)
	return app.writeFile(b.out, fmt.Sprintf("%d %d\n", r.Start, r.End))
}

func runCut(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("cut")
	var b bufferFlags
	b.register(fs)
	rest := fs.String("rest", "", "write the buffer without the note to `file`")
	prefix := fs.String("prefix", app.cfg.ClozePrefix, "text in front of the clip")
	suffix := fs.String("suffix", app.cfg.ClozeSuffix, "text after the clip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}
	clip, remaining, _ := app.searcher.Cut(text, cursor, *prefix, *suffix)
	if *rest != "" {
		if err := app.writeFile(*rest, remaining); err != nil {
			return err
		}
	}
	return app.writeFile(b.out, clip)
}

func runNotes(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("notes")
	var b bufferFlags
	b.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, _, err := b.read(app)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for i, n := range app.searcher.Split(text) {
		first, _, _ := strings.Cut(strings.TrimSpace(n.Text), "\n")
		fmt.Fprintf(&sb, "%d\t%d\t%d\t%s\n", i, n.Start, n.End, first)
	}
	return app.writeFile(b.out, sb.String())
}

func runNew(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("new")
	var b bufferFlags
	b.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, _, err := b.read(app)
	if err != nil {
		return err
	}
	return app.writeFile(b.out, app.searcher.AppendDelimiter(text))
}

func runApply(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("apply")
	var b bufferFlags
	var r ruleFlags
	b.register(fs)
	r.register(app, fs)
	onlyNote := fs.Bool("note", false, "only transform the note around the cursor")
	showDiff := fs.Bool("diff", false, "print a patch of the changes instead of the result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ruleText, opts, err := r.load(app)
	if err != nil {
		return err
	}
	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}

	var out string
	var res rules.Result
	if *onlyNote {
		out, _, res = transform.Note(app.searcher, text, cursor, ruleText, opts)
	} else {
		res = app.engine.Apply(text, ruleText, opts)
		out = res.Text
	}
	app.report(res)

	if *showDiff {
		return app.writeFile(b.out, app.diff(text, out))
	}
	return app.writeFile(b.out, out)
}

// diff returns a patch turning before into after.
func (app *Application) diff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	dmp.DiffCleanupSemantic(diffs)
	app.logger.Debug("edit distance %d", dmp.DiffLevenshtein(diffs))
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

func runDu2Ich(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("du2ich")
	var b bufferFlags
	b.register(fs)
	onlyNote := fs.Bool("note", false, "only transform the note around the cursor")
	logRules := fs.Bool("log", app.cfg.Log, "print the rules that matched to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}

	var out string
	var res rules.Result
	if *onlyNote {
		out, _, res = transform.Du2IchNote(app.searcher, text, cursor, *logRules)
	} else {
		res = transform.Du2Ich(text, *logRules)
		out = res.Text
	}
	app.report(res)
	return app.writeFile(b.out, out)
}

func runHighlights(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("highlights")
	var b bufferFlags
	b.register(fs)
	crop := fs.Bool("crop", false, "join the highlights with spaces")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, _, err := b.read(app)
	if err != nil {
		return err
	}
	if *crop {
		return app.writeFile(b.out, transform.CropHighlights(text))
	}

	var sb strings.Builder
	for _, h := range transform.Highlights(text) {
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	return app.writeFile(b.out, sb.String())
}

func runRule(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("rule")
	in := fs.String("in", "", "read the text from `file` instead of the arguments")
	wordBoundary := fs.Bool("word-boundary", false, "only match at the start of a word")
	escapeOnly := fs.Bool("escape", false, "only print the escaped pattern")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if *in != "" {
		data, err := app.readFile(*in)
		if err != nil {
			return err
		}
		text = data
	}
	if text == "" {
		return usageError("rule needs text")
	}

	if *escapeOnly {
		return app.writeFile("", rules.Escape(text)+"\n")
	}
	return app.writeFile("", rules.BuildRule(text, *wordBoundary)+"\n")
}

func runCheck(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("check")
	var r ruleFlags
	r.register(app, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ruleText, opts, err := r.load(app)
	if err != nil {
		return err
	}

	ok, res := rules.SelfCheck(ruleText)
	diags := rules.Lint(ruleText, opts.WholeWords)
	for _, d := range diags {
		fmt.Fprintf(app.stdout, "lint: %v\n", d)
	}
	if ok {
		app.logger.Info("self-check passed")
	} else {
		fmt.Fprintf(app.stdout, "rules changed ordinary text, left over: %q\n", res.Text)
		fmt.Fprint(app.stdout, res.Log)
	}

	if !ok || len(diags) > 0 {
		return fmt.Errorf("%w: %d lint problems, self-check passed: %v", ErrCheckFailed, len(diags), ok)
	}
	return nil
}

func runLint(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("lint")
	var r ruleFlags
	r.register(app, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ruleText, opts, err := r.load(app)
	if err != nil {
		return err
	}

	diags := rules.Lint(ruleText, opts.WholeWords)
	for _, d := range diags {
		fmt.Fprintf(app.stdout, "%v\n", d)
	}
	if len(diags) > 0 {
		return fmt.Errorf("%w: %d problems", ErrCheckFailed, len(diags))
	}
	app.logger.Info("%d rules, no problems", len(rules.Parse(ruleText)))
	return nil
}

func runSets(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("sets")
	library := fs.String("library", app.cfg.LibraryFile, "rule set library `file` (YAML)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lib, err := app.loadLibrary(*library)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, name := range lib.Names() {
		rs, _ := lib.Lookup(name)
		fmt.Fprintf(&sb, "%s\t%s\n", name, rs.Description)
	}
	return app.writeFile("", sb.String())
}

func runPrompt(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("prompt")
	var b bufferFlags
	b.register(fs)
	base := fs.String("base", "", "text in front of the editor context")
	mode := fs.String("mode", app.cfg.InsertMode, "insertAtCursor or appendAtEnd")
	maxChars := fs.Int("max", app.cfg.MaxPromptChars, "maximum prompt size in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := dictation.ParseMode(*mode)
	if err != nil {
		return usageError("%v", err)
	}
	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}

	prefix := dictation.EditorPrefix(app.searcher, text, cursor, m)
	return app.writeFile(b.out, dictation.Prompt(*base, prefix, *maxChars))
}

func runInsert(_ context.Context, app *Application, args []string) error {
	fs := app.flagSet("insert")
	var b bufferFlags
	b.register(fs)
	transcript := fs.String("text", "", "transcript to insert")
	transcriptFile := fs.String("transcript", "", "read the transcript from `file`")
	mode := fs.String("mode", app.cfg.InsertMode, "insertAtCursor or appendAtEnd")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := dictation.ParseMode(*mode)
	if err != nil {
		return usageError("%v", err)
	}
	if *transcriptFile != "" {
		if *transcript, err = app.readFile(*transcriptFile); err != nil {
			return err
		}
	}
	if *transcript == "" {
		return usageError("insert needs -text or -transcript")
	}

	text, cursor, err := b.read(app)
	if err != nil {
		return err
	}
	out, newCursor := dictation.Insert(text, cursor, *transcript, m)
	app.logger.Debug("inserted %d bytes, cursor %d", len(out)-len(text), newCursor)
	return app.writeFile(b.out, out)
}
