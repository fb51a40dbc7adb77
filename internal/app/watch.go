package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dshills/scratchpad/internal/rules"
	"github.com/dshills/scratchpad/internal/watcher"
	"github.com/google/uuid"
)

func runWatch(ctx context.Context, app *Application, args []string) error {
	fs := app.flagSet("watch")
	var r ruleFlags
	r.register(app, fs)
	in := fs.String("in", "", "input `file` to transform")
	out := fs.String("out", "", "`file` receiving the result")
	delay := fs.Duration("debounce", watcher.DefaultConfig().DebounceDelay, "wait this long for changes to settle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		return usageError("watch needs -in and -out files")
	}
	if r.set == "" && r.file == "" {
		return ErrNoRules
	}
	if r.set != "" && r.library == "" {
		return usageError("no rule set library configured")
	}
	if samePath(*in, *out) || (r.set == "" && samePath(r.file, *out)) {
		return usageError("watch cannot write to a file it watches")
	}

	w, err := watcher.NewDebounced(watcher.WithDebounceDelay(*delay))
	if err != nil {
		return err
	}
	defer w.Close()

	sources := []string{*in}
	if r.set != "" {
		sources = append(sources, r.library)
	} else {
		sources = append(sources, r.file)
	}
	for _, path := range sources {
		if err := w.Watch(path); err != nil {
			return NewOperationError("watch", path, err)
		}
	}

	log := app.logger.WithComponent("watch").WithField("session", uuid.NewString())
	log.Info("watching %s, writing %s", *in, *out)

	transform := func() {
		ruleText, opts, err := r.load(app)
		if err != nil {
			log.Warn("loading rules: %v", err)
			return
		}
		text, err := app.readFile(*in)
		if err != nil {
			log.Warn("%v", err)
			return
		}

		start := time.Now()
		res := app.engine.Apply(text, ruleText, opts)
		app.report(res)
		if err := app.writeFile(*out, res.Text); err != nil {
			log.Error("%v", err)
			return
		}
		hits, misses := app.engine.Stats()
		log.WithFields(map[string]any{
			"hits":   hits,
			"misses": misses,
		}).Debug("applied %d rules in %s", len(rules.Parse(ruleText)), time.Since(start))
	}

	transform()
	watcher.Run(ctx, w,
		func(e watcher.Event) {
			log.Debug("%s %s", e.Op, e.Path)
			transform()
		},
		func(err error) {
			log.Warn("watch error: %v", err)
		},
	)

	stats := w.Stats()
	log.Info("stopped after %d events, %d errors", stats.TotalEvents, stats.Errors)
	return nil
}

// samePath returns true if a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
