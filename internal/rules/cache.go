package rules

import (
	"sync"
	"sync/atomic"
)

// DefaultCacheSize is the number of compiled rule sets an Engine keeps.
const DefaultCacheSize = 64

// Engine applies rule sets and caches their compiled form.
//
// The cache is keyed by the rule set text and the options that change
// compilation, so Engine.Apply returns exactly what Apply returns. An Engine
// is safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	compiled map[cacheKey][]step
	maxSize  int

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheKey struct {
	rules        string
	wholeWords   bool
	preserveCase bool
}

// NewEngine creates an Engine that caches up to maxSize rule sets.
// A maxSize of zero or less uses DefaultCacheSize.
func NewEngine(maxSize int) *Engine {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Engine{
		compiled: make(map[cacheKey][]step),
		maxSize:  maxSize,
	}
}

// Apply applies rules to subject like the package level Apply.
func (e *Engine) Apply(subject, rules string, opts Options) Result {
	return run(subject, e.steps(rules, opts), opts)
}

// steps returns the compiled steps for rules, compiling on a cache miss.
func (e *Engine) steps(rules string, opts Options) []step {
	key := cacheKey{rules: rules, wholeWords: opts.WholeWords, preserveCase: opts.PreserveCase}

	e.mu.RLock()
	steps, ok := e.compiled[key]
	e.mu.RUnlock()
	if ok {
		e.hits.Add(1)
		return steps
	}

	steps = compileSteps(Parse(rules), opts.WholeWords, opts.PreserveCase)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.misses.Add(1)
	if len(e.compiled) >= e.maxSize {
		e.compiled = make(map[cacheKey][]step)
	}
	e.compiled[key] = steps
	return steps
}

// Len returns the number of cached rule sets.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.compiled)
}

// Stats returns the cache hit and miss counts.
func (e *Engine) Stats() (hits, misses int64) {
	return e.hits.Load(), e.misses.Load()
}

// Clear drops all cached rule sets.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compiled = make(map[cacheKey][]step)
}
